package service

import (
	"time"

	"ungatekeep/internal/models"
)

// UsernameCooldownWindow is how long a user must wait between username
// changes. Registration seeds the timestamp, so the first change is also
// gated from the moment the profile is created.
const UsernameCooldownWindow = 7 * 24 * time.Hour

// UsernameCooldownPolicy decides whether a username change is allowed yet.
// It is a pure policy over timestamps; persistence of username_updated_at
// stays with the caller.
type UsernameCooldownPolicy struct {
	clock Clock
}

func NewUsernameCooldownPolicy(clock Clock) *UsernameCooldownPolicy {
	return &UsernameCooldownPolicy{clock: clock}
}

// Check returns nil when the window has fully elapsed. The boundary instant
// counts as elapsed: a change exactly UsernameCooldownWindow after the last
// one is allowed. A violation carries the instant the caller becomes
// eligible again.
func (p *UsernameCooldownPolicy) Check(lastChangedAt time.Time) error {
	eligibleAt := lastChangedAt.UTC().Add(UsernameCooldownWindow)
	now := p.clock.NowUTC()
	if now.Before(eligibleAt) {
		return models.NewRateLimitedError(
			"Username can only be changed once every 7 days",
			eligibleAt,
		)
	}
	return nil
}

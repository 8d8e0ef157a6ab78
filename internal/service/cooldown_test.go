package service

import (
	"testing"
	"time"

	"ungatekeep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsernameCooldownPolicy_Check(t *testing.T) {
	t.Parallel()

	lastChanged := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	eligibleAt := lastChanged.Add(UsernameCooldownWindow)

	t.Run("inside window is rate limited with eligibility instant", func(t *testing.T) {
		t.Parallel()
		clock := NewStubClock(lastChanged.Add(3 * 24 * time.Hour))
		policy := NewUsernameCooldownPolicy(clock)

		err := policy.Check(lastChanged)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeRateLimited, appErr.Code)
		require.NotNil(t, appErr.RetryAt)
		assert.True(t, appErr.RetryAt.Equal(eligibleAt),
			"retry instant must be last change plus the full window")
	})

	t.Run("one second before the boundary is still blocked", func(t *testing.T) {
		t.Parallel()
		clock := NewStubClock(eligibleAt.Add(-time.Second))
		policy := NewUsernameCooldownPolicy(clock)

		err := policy.Check(lastChanged)
		require.Error(t, err)
	})

	t.Run("exactly at the boundary is allowed", func(t *testing.T) {
		t.Parallel()
		clock := NewStubClock(eligibleAt)
		policy := NewUsernameCooldownPolicy(clock)

		assert.NoError(t, policy.Check(lastChanged))
	})

	t.Run("after the window is allowed", func(t *testing.T) {
		t.Parallel()
		clock := NewStubClock(eligibleAt.Add(48 * time.Hour))
		policy := NewUsernameCooldownPolicy(clock)

		assert.NoError(t, policy.Check(lastChanged))
	})

	t.Run("non-UTC timestamp is normalized", func(t *testing.T) {
		t.Parallel()
		zone := time.FixedZone("UTC+5", 5*3600)
		clock := NewStubClock(eligibleAt)
		policy := NewUsernameCooldownPolicy(clock)

		assert.NoError(t, policy.Check(lastChanged.In(zone)))
	})
}

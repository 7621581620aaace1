package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
)

func TestSessionLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sess := &Session{
		ID:          id.NewSessionID(),
		PrincipalID: id.NewPrincipalID(),
		Status:      SessionStatusActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
	}

	assert.True(t, sess.IsActive(now))
	assert.False(t, sess.IsActive(now.Add(time.Hour)), "expiry is exclusive")
	require.NoError(t, sess.CanRevoke())

	sess.ApplyRevocation(now.Add(time.Minute))
	assert.False(t, sess.IsActive(now))
	require.NotNil(t, sess.RevokedAt)
	assert.ErrorIs(t, sess.CanRevoke(), ErrSessionRevoked)
}

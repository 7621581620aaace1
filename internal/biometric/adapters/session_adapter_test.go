package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservice "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/service"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/store/session"
	jwttoken "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/jwt_token"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
)

func TestSessionAdapter_IssueSession(t *testing.T) {
	store := session.NewInMemory()
	sessions := authservice.New(store, jwttoken.NewJWTService("k", "iss", "aud"), authservice.WithSessionTTL(time.Hour))
	adapter := NewSessionAdapter(sessions)

	principalID := id.NewPrincipalID()
	sess, err := adapter.IssueSession(context.Background(), principalID)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", sess.TokenType)
	assert.NotEmpty(t, sess.AccessToken)

	stored, err := store.FindByID(context.Background(), sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, principalID, stored.PrincipalID)
	assert.Equal(t, stored.ExpiresAt, sess.ExpiresAt)
}

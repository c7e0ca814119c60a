package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhoAmI(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "user@x.com", "s3cret-pass")

	token, _, err := env.svc.Auth.(*authService).tokens.Issue(user.ID)
	require.NoError(t, err)

	profile, err := env.svc.User.WhoAmI(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "English", profile.Language)
	assert.Equal(t, []string{"Action", "Comedy"}, profile.Preferences)
}

func TestWhoAmI_Failures(t *testing.T) {
	env := newTestEnv(t)
	tokens := env.svc.Auth.(*authService).tokens

	orphan, _, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"missing", "", ErrMissingToken},
		{"malformed", "abc.def", ErrInvalidToken},
		{"unknown user", orphan, ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.User.WhoAmI(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWhoAmI_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "user@x.com", "s3cret-pass")

	token, _, err := env.svc.Auth.(*authService).tokens.Issue(user.ID)
	require.NoError(t, err)

	env.clock.Set(testStart.Add(2 * time.Hour))
	_, err = env.svc.User.WhoAmI(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

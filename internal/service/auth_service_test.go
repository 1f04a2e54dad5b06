package service

import (
	"context"
	"testing"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager() app.TokenManager {
	return app.NewTokenManager(app.TokenConfig{
		SecretKey: "unit-test-secret",
		Expiry:    time.Hour,
	})
}

func TestAuthLoginPlainPassword(t *testing.T) {
	tokens := newTestTokenManager()
	svc := NewAuthService("open sesame", tokens, time.Hour)

	got, err := svc.Login(context.Background(), &dto.AuthRequest{Password: "open sesame"}, "test-client", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, got.Token)
	require.True(t, time.Time(got.ExpiredAt).After(time.Now()))

	session, err := tokens.Parse(got.Token)
	require.NoError(t, err)
	require.NotEmpty(t, session.SessionID)
	require.Equal(t, "test-client", session.Client)
	require.Equal(t, "127.0.0.1", session.IP)
}

func TestAuthLoginBcryptPassword(t *testing.T) {
	hash, err := util.GeneratePasswordHash("open sesame")
	require.NoError(t, err)

	svc := NewAuthService(hash, newTestTokenManager(), time.Hour)

	_, err = svc.Login(context.Background(), &dto.AuthRequest{Password: "open sesame"}, "test-client", "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.AuthRequest{Password: "wrong"}, "test-client", "127.0.0.1")
	assertCode(t, err, code.ErrorUserLoginFailed)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := NewAuthService("open sesame", newTestTokenManager(), time.Hour)

	_, err := svc.Login(context.Background(), &dto.AuthRequest{Password: "open Sesame"}, "test-client", "127.0.0.1")
	assertCode(t, err, code.ErrorUserLoginFailed)
}

func TestAuthLoginNotConfigured(t *testing.T) {
	svc := NewAuthService("", newTestTokenManager(), time.Hour)

	_, err := svc.Login(context.Background(), &dto.AuthRequest{Password: ""}, "test-client", "127.0.0.1")
	assertCode(t, err, code.ErrorUserLoginFailed)
}

func TestAuthSessionsAreDistinct(t *testing.T) {
	tokens := newTestTokenManager()
	svc := NewAuthService("open sesame", tokens, time.Hour)
	ctx := context.Background()

	first, err := svc.Login(ctx, &dto.AuthRequest{Password: "open sesame"}, "client-a", "10.0.0.1")
	require.NoError(t, err)
	second, err := svc.Login(ctx, &dto.AuthRequest{Password: "open sesame"}, "client-b", "10.0.0.2")
	require.NoError(t, err)

	sa, err := tokens.Parse(first.Token)
	require.NoError(t, err)
	sb, err := tokens.Parse(second.Token)
	require.NoError(t, err)
	require.NotEqual(t, sa.SessionID, sb.SessionID)
}

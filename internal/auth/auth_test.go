package auth

import (
	"context"
	"testing"
	"time"

	"curbside-auctions/internal/adapters/memory"
	"curbside-auctions/internal/adapters/storage"
	"curbside-auctions/internal/domain/settings"
	"curbside-auctions/internal/domain/shared"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()

	repo := storage.NewSettingsRepository(memory.NewStore())
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	cfg := settings.Defaults()
	cfg.AdminPassHash = hash
	require.NoError(t, repo.Save(context.Background(), cfg))

	return NewAuthService(AuthServiceParams{
		SettingsRepo: repo,
		Secret:       "test-secret",
		TokenTTL:     ttl,
		Logger:       zerolog.Nop(),
	})
}

func TestAuthService_Login(t *testing.T) {
	service := newAuthService(t, time.Hour)
	ctx := context.Background()

	token, err := service.Login(ctx, "admin", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", session.User)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service := newAuthService(t, time.Hour)

	_, err := service.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	service := newAuthService(t, time.Hour)

	_, err := service.Login(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthService_Login_NoSettings(t *testing.T) {
	service := NewAuthService(AuthServiceParams{
		SettingsRepo: storage.NewSettingsRepository(memory.NewStore()),
		Secret:       "test-secret",
		Logger:       zerolog.Nop(),
	})

	_, err := service.Login(context.Background(), "admin", "password123")
	assert.ErrorIs(t, err, shared.ErrSettingsNotFound)
}

func TestAuthService_VerifyToken_Garbage(t *testing.T) {
	service := newAuthService(t, time.Hour)

	_, err := service.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestAuthService_VerifyToken_WrongSecret(t *testing.T) {
	issuer := newAuthService(t, time.Hour)
	token, err := issuer.Login(context.Background(), "admin", "password123")
	require.NoError(t, err)

	verifier := NewAuthService(AuthServiceParams{
		SettingsRepo: storage.NewSettingsRepository(memory.NewStore()),
		Secret:       "different-secret",
		Logger:       zerolog.Nop(),
	})
	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	service := newAuthService(t, time.Hour)
	// Backdate issuance past expiry.
	service.tokenTTL = -time.Minute

	token, err := service.Login(context.Background(), "admin", "password123")
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestSessionContext(t *testing.T) {
	session := &Session{User: "admin", ExpiresAt: time.Now().Add(time.Hour)}
	ctx := WithSession(context.Background(), session)

	got, ok := SessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "admin", got.User)

	_, ok = SessionFromContext(context.Background())
	assert.False(t, ok)
}

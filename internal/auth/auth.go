package auth

import (
	"context"
	"fmt"
	"time"

	"curbside-auctions/internal/domain/shared"
	"curbside-auctions/internal/ports/outbound"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Session is the explicit admin session handed to write operations that
// require elevated privilege.
type Session struct {
	User      string
	ExpiresAt time.Time
}

// AuthService validates admin credentials against the stored settings hash
// and issues short-lived session tokens.
type AuthService struct {
	settingsRepo outbound.SettingsRepository
	secret       []byte
	tokenTTL     time.Duration
	logger       zerolog.Logger
}

type AuthServiceParams struct {
	SettingsRepo outbound.SettingsRepository
	Secret       string
	TokenTTL     time.Duration
	Logger       zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(params AuthServiceParams) *AuthService {
	ttl := params.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		settingsRepo: params.SettingsRepo,
		secret:       []byte(params.Secret),
		tokenTTL:     ttl,
		logger:       params.Logger.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifies credentials and returns a signed session token.
func (service *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	cfg, err := service.settingsRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	if cfg == nil {
		return "", shared.ErrSettingsNotFound
	}

	if username != cfg.AdminUser {
		service.logger.Warn().Str("username", username).Msg("Login attempt with unknown username")
		return "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPassHash), []byte(password)); err != nil {
		service.logger.Warn().Str("username", username).Msg("Login attempt with wrong password")
		return "", shared.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(service.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	service.logger.Info().Str("username", username).Time("expires_at", expiresAt).Msg("Admin logged in")
	return signed, nil
}

// VerifyToken parses a session token and returns the session it represents.
func (service *AuthService) VerifyToken(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, shared.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, shared.ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, shared.ErrInvalidToken
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, shared.ErrInvalidToken
	}

	return &Session{User: sub, ExpiresAt: time.Unix(int64(exp), 0)}, nil
}

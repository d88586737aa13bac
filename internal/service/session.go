package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"optiwatt/internal/logger"
	"optiwatt/internal/models"
	"optiwatt/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// Local state keys.
const (
	KeyUser  = "optiwatt_user"
	KeyTheme = "optiwatt_theme"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	defaultUserName = "Alex Rivera"
	defaultTokenTTL = 12 * time.Hour
)

// Domain errors for session flows.
var (
	ErrNoSession    = errors.New("no active session")
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidTheme = errors.New("theme must be light or dark")
)

// SessionConfig holds token and latency settings for SessionService.
type SessionConfig struct {
	SigningKey string
	TokenTTL   time.Duration
	LoginDelay time.Duration
}

// SessionService implements the mock sign-in. Any name/email is accepted.
type SessionService struct {
	state repository.LocalState
	cfg   SessionConfig
	log   *logger.Logger
	now   func() time.Time
}

func NewSessionService(state repository.LocalState, cfg SessionConfig, log *logger.Logger) *SessionService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SessionService{state: state, cfg: cfg, log: log, now: time.Now}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Login waits the simulated latency, stores the user and returns a session token.
func (s *SessionService) Login(ctx context.Context, p LoginParams) (models.User, string, error) {
	if err := sleepCtx(ctx, s.cfg.LoginDelay); err != nil {
		return models.User{}, "", err
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = defaultUserName
	}
	now := s.now()
	u := models.User{
		ID:              fmt.Sprintf("u-%d", now.UnixMilli()),
		Name:            name,
		Email:           strings.TrimSpace(p.Email),
		IsAuthenticated: true,
	}

	blob, err := json.Marshal(u)
	if err != nil {
		return models.User{}, "", fmt.Errorf("encode user: %w", err)
	}
	if err := s.state.Put(ctx, KeyUser, string(blob)); err != nil {
		return models.User{}, "", err
	}

	token, err := s.issueToken(u.ID, now)
	if err != nil {
		return models.User{}, "", err
	}
	return u, token, nil
}

func (s *SessionService) Logout(ctx context.Context) error {
	return s.state.Delete(ctx, KeyUser)
}

// CurrentUser returns the stored user. A blob that does not decode into an
// authenticated user is removed and reported as ErrNoSession.
func (s *SessionService) CurrentUser(ctx context.Context) (models.User, error) {
	raw, err := s.state.Get(ctx, KeyUser)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, ErrNoSession
	}
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" || !u.IsAuthenticated {
		s.log.Warnw("stored_user_discarded", "err", err)
		if derr := s.state.Delete(ctx, KeyUser); derr != nil {
			return models.User{}, derr
		}
		return models.User{}, ErrNoSession
	}
	return u, nil
}

// Theme returns the stored theme, light when unset or unrecognised.
func (s *SessionService) Theme(ctx context.Context) (string, error) {
	raw, err := s.state.Get(ctx, KeyTheme)
	if errors.Is(err, repository.ErrNotFound) {
		return ThemeLight, nil
	}
	if err != nil {
		return "", err
	}
	if raw == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

func (s *SessionService) SetTheme(ctx context.Context, theme string) (string, error) {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme != ThemeLight && theme != ThemeDark {
		return "", ErrInvalidTheme
	}
	if err := s.state.Put(ctx, KeyTheme, theme); err != nil {
		return "", err
	}
	return theme, nil
}

// ParseToken parses JWT and returns the user id
func (s *SessionService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *SessionService) issueToken(userID string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
		UserID: userID,
	})
	signed, err := token.SignedString([]byte(s.cfg.SigningKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

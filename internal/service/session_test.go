package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"optiwatt/internal/models"
	"optiwatt/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// memState is an in-test LocalState backed by a map.
type memState struct {
	data   map[string]string
	putErr error
	getErr error

	deletes []string
}

func newMemState() *memState { return &memState{data: map[string]string{}} }

func (m *memState) Get(ctx context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (m *memState) Put(ctx context.Context, key, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func (m *memState) Delete(ctx context.Context, key string) error {
	m.deletes = append(m.deletes, key)
	delete(m.data, key)
	return nil
}

const testSigningKey = "test-key"

func newTestSession(state *memState) *SessionService {
	s := NewSessionService(state, SessionConfig{SigningKey: testSigningKey, TokenTTL: time.Hour}, nil)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestSession_LoginStoresUserAndIssuesToken(t *testing.T) {
	state := newMemState()
	s := newTestSession(state)

	u, token, err := s.Login(context.Background(), LoginParams{Name: " Priya ", Email: "priya@example.com"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	want := models.User{ID: "u-1700000000000", Name: "Priya", Email: "priya@example.com", IsAuthenticated: true}
	if u != want {
		t.Fatalf("user = %+v; want %+v", u, want)
	}

	var stored models.User
	if err := json.Unmarshal([]byte(state.data[KeyUser]), &stored); err != nil {
		t.Fatalf("stored blob is not JSON: %v", err)
	}
	if stored != want {
		t.Fatalf("stored = %+v; want %+v", stored, want)
	}

	id, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != want.ID {
		t.Fatalf("token user = %q; want %q", id, want.ID)
	}
}

func TestSession_LoginDefaultsName(t *testing.T) {
	s := newTestSession(newMemState())
	u, _, err := s.Login(context.Background(), LoginParams{Email: "a@b.c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name != defaultUserName {
		t.Fatalf("name = %q; want %q", u.Name, defaultUserName)
	}
}

func TestSession_LoginRespectsCancel(t *testing.T) {
	state := newMemState()
	s := NewSessionService(state, SessionConfig{SigningKey: testSigningKey, LoginDelay: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := s.Login(ctx, LoginParams{Name: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, ok := state.data[KeyUser]; ok {
		t.Fatalf("user must not be stored on cancelled login")
	}
}

func TestSession_LoginStoreError(t *testing.T) {
	state := newMemState()
	state.putErr = errors.New("disk full")
	if _, _, err := newTestSession(state).Login(context.Background(), LoginParams{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSession_CurrentUser(t *testing.T) {
	tests := []struct {
		name        string
		blob        *string
		wantErr     error
		wantDeleted bool
	}{
		{name: "missing", blob: nil, wantErr: ErrNoSession},
		{name: "valid", blob: strPtr(`{"id":"u-1","name":"A","email":"a@b","isAuthenticated":true}`)},
		{name: "malformed", blob: strPtr(`{not json`), wantErr: ErrNoSession, wantDeleted: true},
		{name: "not authenticated", blob: strPtr(`{"id":"u-1","isAuthenticated":false}`), wantErr: ErrNoSession, wantDeleted: true},
		{name: "no id", blob: strPtr(`{"isAuthenticated":true}`), wantErr: ErrNoSession, wantDeleted: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := newMemState()
			if tc.blob != nil {
				state.data[KeyUser] = *tc.blob
			}
			u, err := newTestSession(state).CurrentUser(context.Background())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v; want %v", err, tc.wantErr)
			}
			if tc.wantErr == nil && u.ID != "u-1" {
				t.Fatalf("unexpected user %+v", u)
			}
			_, still := state.data[KeyUser]
			if tc.wantDeleted && still {
				t.Fatalf("corrupted blob should be removed")
			}
		})
	}
}

func TestSession_CurrentUserStoreError(t *testing.T) {
	state := newMemState()
	state.getErr = errors.New("locked")
	_, err := newTestSession(state).CurrentUser(context.Background())
	if err == nil || errors.Is(err, ErrNoSession) {
		t.Fatalf("expected raw store error, got %v", err)
	}
}

func TestSession_Logout(t *testing.T) {
	state := newMemState()
	s := newTestSession(state)
	if _, _, err := s.Login(context.Background(), LoginParams{Name: "x"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := s.CurrentUser(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}
}

func TestSession_Theme(t *testing.T) {
	state := newMemState()
	s := newTestSession(state)

	got, err := s.Theme(context.Background())
	if err != nil || got != ThemeLight {
		t.Fatalf("default theme = %q, %v", got, err)
	}

	if got, err = s.SetTheme(context.Background(), " DARK "); err != nil || got != ThemeDark {
		t.Fatalf("SetTheme = %q, %v", got, err)
	}
	if state.data[KeyTheme] != ThemeDark {
		t.Fatalf("stored theme = %q", state.data[KeyTheme])
	}
	if got, _ = s.Theme(context.Background()); got != ThemeDark {
		t.Fatalf("theme = %q; want dark", got)
	}

	if _, err = s.SetTheme(context.Background(), "sepia"); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}

	state.data[KeyTheme] = "garbage"
	if got, _ = s.Theme(context.Background()); got != ThemeLight {
		t.Fatalf("unknown stored theme should read as light, got %q", got)
	}
}

func TestSession_ParseToken_Malformed(t *testing.T) {
	s := newTestSession(newMemState())
	if _, err := s.ParseToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSession_ParseToken_InvalidSignature(t *testing.T) {
	other := NewSessionService(newMemState(), SessionConfig{SigningKey: "other"}, nil)
	token, err := other.issueToken("u-1", time.Now())
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	if _, err := newTestSession(newMemState()).ParseToken(token); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestSession_ParseToken_Expired(t *testing.T) {
	s := newTestSession(newMemState())
	token, err := s.issueToken("u-1", time.UnixMilli(1700000000000).Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	if _, err := s.ParseToken(token); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestSession_ParseToken_UnexpectedAlg(t *testing.T) {
	s := newTestSession(newMemState())
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	now := s.now()
	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: "u-1",
	})
	tokenStr, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err = s.ParseToken(tokenStr); err == nil {
		t.Fatalf("expected error due to unexpected signing method")
	}
}

func strPtr(s string) *string { return &s }

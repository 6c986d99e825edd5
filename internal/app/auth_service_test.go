package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"bodydry/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	createFn     func(ctx context.Context, email, passwordHash string) (*domain.User, error)
	countFn      func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, email, passwordHash)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(h)
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()

	var storedHash string
	users := &mockUserRepo{
		createFn: func(ctx context.Context, email, passwordHash string) (*domain.User, error) {
			if email != "ann@example.com" {
				t.Errorf("expected normalized email, got %q", email)
			}
			storedHash = passwordHash
			return &domain.User{ID: 7, Email: email, PasswordHash: passwordHash}, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	user, err := svc.Register(ctx, "  Ann@Example.com ", "password123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 7 {
		t.Errorf("expected user ID 7, got %d", user.ID)
	}
	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("password123")) != nil {
		t.Error("stored hash does not match password")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing at sign", "annexample.com", "password123"},
		{"empty email", "", "password123"},
		{"short password", "ann@example.com", "short"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.password)
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{})

	_, err := svc.Register(context.Background(), "ann@example.com", "password123")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_LostCreateRace(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, email, passwordHash string) (*domain.User, error) {
			return nil, fmt.Errorf("%w: users_email_key", domain.ErrDuplicate)
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{})

	_, err := svc.Register(context.Background(), "ann@example.com", "password123")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	hash := hashed(t, "password123")

	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email == "ann@example.com" {
				return &domain.User{ID: 1, Email: email, PasswordHash: hash}, nil
			}
			return nil, nil
		},
	}

	var created struct {
		userID    int64
		userAgent string
		ip        string
		expiresAt time.Time
	}
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
			created.userID = userID
			created.userAgent = userAgent
			created.ip = ip
			created.expiresAt = expiresAt
			return nil
		},
	}

	svc := NewAuthService(users, sessions).WithSessionTTL(time.Hour)
	token, err := svc.Login(ctx, "ANN@example.com", "password123", "curl/8", "10.0.0.1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Error("expected non-empty token")
	}
	if created.userID != 1 || created.userAgent != "curl/8" || created.ip != "10.0.0.1" {
		t.Errorf("unexpected session: %+v", created)
	}
	if d := time.Until(created.expiresAt); d <= 59*time.Minute || d > time.Hour {
		t.Errorf("expected expiry about an hour out, got %v", d)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	hash := hashed(t, "password123")
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{})

	_, err := svc.Login(context.Background(), "ann@example.com", "wrongpassword", "", "")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{})

	_, err := svc.Login(context.Background(), "nobody@example.com", "password123", "", "")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_SSOAccountHasNoPassword(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 3, Email: email}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{})

	_, err := svc.Login(context.Background(), "sso@example.com", "", "", "")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ValidateSession_Valid(t *testing.T) {
	ctx := context.Background()

	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{Token: tok, UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Email: "ann@example.com"}, nil
		},
	}

	svc := NewAuthService(users, sessions)
	user, err := svc.ValidateSession(ctx, "validtoken")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Email != "ann@example.com" {
		t.Errorf("expected email 'ann@example.com', got %s", user.Email)
	}
}

func TestAuthService_ValidateSession_NotFound(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{})

	_, err := svc.ValidateSession(context.Background(), "missing")
	if err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	deleted := false
	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{Token: tok, UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)}, nil
		},
		deleteFn: func(ctx context.Context, tok string) error {
			deleted = true
			return nil
		},
	}
	svc := NewAuthService(&mockUserRepo{}, sessions)

	_, err := svc.ValidateSession(context.Background(), "expiredtoken")
	if err != ErrSessionExpired {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Error("expected session to be deleted")
	}
}

func TestAuthService_ValidateSession_UserGone(t *testing.T) {
	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{Token: tok, UserID: 9, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	svc := NewAuthService(&mockUserRepo{}, sessions)

	_, err := svc.ValidateSession(context.Background(), "orphan")
	if err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_LoginWithUser_ExistingUser(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 4, Email: email}, nil
		},
		createFn: func(ctx context.Context, email, passwordHash string) (*domain.User, error) {
			t.Fatal("existing user must not be re-created")
			return nil, nil
		},
	}
	var sessionUser int64
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
			sessionUser = userID
			return nil
		},
	}

	svc := NewAuthService(users, sessions)
	token, err := svc.LoginWithUser(context.Background(), "sso@example.com", "", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" || sessionUser != 4 {
		t.Errorf("expected a session for user 4, got token=%q user=%d", token, sessionUser)
	}
}

func TestAuthService_LoginWithUser_ProvisionsNewUser(t *testing.T) {
	var createdHash = "unset"
	users := &mockUserRepo{
		createFn: func(ctx context.Context, email, passwordHash string) (*domain.User, error) {
			createdHash = passwordHash
			return &domain.User{ID: 5, Email: email}, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	if _, err := svc.LoginWithUser(context.Background(), "New@Example.com", "", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if createdHash != "" {
		t.Errorf("expected empty password hash for SSO user, got %q", createdHash)
	}
}

func TestAuthService_LoginWithUser_LostCreateRace(t *testing.T) {
	calls := 0
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return nil, nil
			}
			return &domain.User{ID: 6, Email: email}, nil
		},
		createFn: func(ctx context.Context, email, passwordHash string) (*domain.User, error) {
			return nil, errors.New("duplicate key")
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	if _, err := svc.LoginWithUser(context.Background(), "race@example.com", "", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected a second lookup, got %d", calls)
	}
}

func TestAuthService_PurgeExpiredSessions(t *testing.T) {
	sessions := &mockSessionRepo{
		deleteExpiredFn: func(ctx context.Context) (int64, error) { return 4, nil },
	}
	svc := NewAuthService(&mockUserRepo{}, sessions)

	n, err := svc.PurgeExpiredSessions(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 purged sessions, got %d", n)
	}
}

func TestConstantTimeCompare(t *testing.T) {
	if !ConstantTimeCompare("secret", "secret") {
		t.Error("expected equal strings to match")
	}
	if ConstantTimeCompare("secret", "secreT") {
		t.Error("expected different strings not to match")
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	findCalls int
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// Create mirrors a unique index on email.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Email] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, NewJWTManager("secret", time.Hour), bcrypt.MinCost, discardLogger)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.ID == "" || user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	stored := repo.users["a@x.com"]
	if stored.PasswordHash == "password1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password1"},
		{"no at sign", "ax.com", "password1"},
		{"no tld", "a@x", "password1"},
		{"whitespace", "a b@x.com", "password1"},
		{"empty password", "a@x.com", ""},
		{"short password", "a@x.com", "1234567"},
		{"long password", "a@x.com", strings.Repeat("p", 101)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}

	if len(repo.users) != 0 {
		t.Fatalf("validation failures must not reach the store")
	}
}

func TestAuthService_Register_PasswordBounds(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "min@x.com", strings.Repeat("p", 8)); err != nil {
		t.Fatalf("8 characters must be accepted: %v", err)
	}
	if _, err := svc.Register(context.Background(), "max@x.com", strings.Repeat("p", 100)); err != nil {
		t.Fatalf("100 characters must be accepted: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "bob@x.com", "password1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), "bob@x.com", "password2")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if domain.KindOf(err) != domain.KindConflict {
		t.Fatalf("expected conflict kind, got %v", domain.KindOf(err))
	}
}

func TestAuthService_Login_RoundTrip(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	registered, err := svc.Register(context.Background(), "carol@x.com", "s3cretpass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	session, err := svc.Login(context.Background(), "carol@x.com", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session == nil || session.Token == "" {
		t.Fatalf("expected a session with a token, got %+v", session)
	}
	if session.User.ID != registered.ID {
		t.Fatalf("unexpected user in session: %+v", session.User)
	}

	userID, err := svc.VerifyToken(session.Token)
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if userID != registered.ID {
		t.Fatalf("expected user id %s, got %s", registered.ID, userID)
	}
	if d := time.Until(session.ExpiresAt); d <= 59*time.Minute || d > time.Hour {
		t.Fatalf("expected a one hour expiry, got %v", d)
	}
}

func TestAuthService_Login_LongPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	long := strings.Repeat("x", 99) + "1"

	if _, err := svc.Register(context.Background(), "long@x.com", long); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	session, err := svc.Login(context.Background(), "long@x.com", long)
	if err != nil || session == nil {
		t.Fatalf("expected login to succeed, got %v %+v", err, session)
	}
	if s, _ := svc.Login(context.Background(), "long@x.com", strings.Repeat("x", 99)+"2"); s != nil {
		t.Fatalf("a different long password must not log in")
	}
}

func TestAuthService_Login_RejectionsAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	_, _ = svc.Register(context.Background(), "dave@x.com", "goodpass1")

	wrong, errWrong := svc.Login(context.Background(), "dave@x.com", "badpass12")
	unknown, errUnknown := svc.Login(context.Background(), "ghost@x.com", "whatever1")

	if wrong != nil || errWrong != nil {
		t.Fatalf("wrong password: expected (nil, nil), got (%+v, %v)", wrong, errWrong)
	}
	if unknown != nil || errUnknown != nil {
		t.Fatalf("unknown email: expected (nil, nil), got (%+v, %v)", unknown, errUnknown)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty email, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@x.com", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty password, got %v", err)
	}
	if repo.findCalls != 0 {
		t.Fatalf("store must not be queried for missing fields")
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	repo := &failingUserRepo{err: errors.New("connection refused")}
	svc := NewAuthService(repo, NewJWTManager("secret", time.Hour), bcrypt.MinCost, discardLogger)

	if _, err := svc.Login(context.Background(), "a@x.com", "password1"); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

type failingUserRepo struct{ err error }

func (r *failingUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, r.err
}

func (r *failingUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, r.err
}

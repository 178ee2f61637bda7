package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdnotes/notes-api/internal/core/domain"
	"github.com/mdnotes/notes-api/internal/core/ports"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// bcrypt refuses inputs longer than this many bytes.
const bcryptMaxInput = 72

// AuthService implements registration, login and token verification.
type AuthService struct {
	repo   ports.UserRepository
	tokens *JWTManager
	cost   int
	log    zerolog.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(repo ports.UserRepository, tokens *JWTManager, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		cost:   bcryptCost,
		log:    log,
		now:    time.Now,
	}
}

// Register validates the credentials, hashes the password and stores a new
// user. Input checks run before the store is touched; duplicates surface as
// domain.ErrUserExists from the store's unique constraint.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.PublicUser, error) {
	if email == "" || !emailPattern.MatchString(email) {
		return nil, domain.InvalidInput("invalid email format")
	}
	if utf8.RuneCountInString(email) > domain.MaxEmailLength {
		return nil, domain.InvalidInput("email must be at most 255 characters")
	}
	if password == "" {
		return nil, domain.InvalidInput("password is required")
	}
	n := utf8.RuneCountInString(password)
	if n < domain.MinPasswordLength {
		return nil, domain.InvalidInput("password must be at least 8 characters")
	}
	if n > domain.MaxPasswordLength {
		return nil, domain.InvalidInput("password must be at most 100 characters")
	}

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), s.cost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.log.Info().Msg("registration rejected: email taken")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created.Public(), nil
}

// Login checks the credentials and issues a token. Unknown emails and wrong
// passwords both yield (nil, nil) so callers cannot tell them apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.InvalidInput("email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a comparison so an unknown email costs the same as a bad password.
			_ = bcrypt.CompareHashAndPassword(s.dummy(), bcryptInput(password))
			return nil, nil
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), bcryptInput(password)) != nil {
		return nil, nil
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("user_id", user.ID).Msg("user logged in")
	return &domain.Session{User: user.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

// VerifyToken satisfies ports.TokenVerifier.
func (s *AuthService) VerifyToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), s.cost)
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to build dummy hash")
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// bcryptInput pre-hashes passwords that exceed bcrypt's input limit so that
// every allowed password length can be stored.
func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.RawStdEncoding.EncodeToString(sum[:]))
}

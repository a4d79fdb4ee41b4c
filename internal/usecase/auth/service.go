package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "library/backend/internal/domain/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service implements the authentication strategies: signup, signin, and
// bearer-token verification. Each strategy performs a single store round-trip.
type Service struct {
	users   domain.UserRepository
	tokens  TokenManager
	nowFunc func() time.Time
}

// NewService constructs an auth service.
func NewService(users domain.UserRepository, tokens TokenManager) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		nowFunc: time.Now,
	}
}

// Signup creates a new user with a hashed password and returns a signed token
// plus the persisted entity without its password hash. Any insertion failure,
// duplicate email included, is surfaced to the caller.
func (s *Service) Signup(ctx context.Context, email, password, username string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" {
		return "", nil, errors.New("email is required")
	}
	if password == "" {
		return "", nil, errors.New("password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hashed),
		CreatedAt:    s.nowFunc().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	tok, err := s.tokens.Generate(payloadFor(user))
	if err != nil {
		return "", nil, err
	}

	return tok, sanitizeUser(user), nil
}

// Signin validates credentials and returns a token plus user. An unknown email
// rejects with ErrUserNotFound, a hash mismatch with ErrIncorrectPassword.
func (s *Service) Signin(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	password := strings.TrimSpace(creds.Password)
	if email == "" || password == "" {
		return "", nil, domain.ErrUserNotFound
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrIncorrectPassword
	}

	tok, err := s.tokens.Generate(payloadFor(user))
	if err != nil {
		return "", nil, err
	}

	return tok, sanitizeUser(user), nil
}

// VerifyToken validates a bearer token and returns the associated user. A
// token whose user no longer exists fails closed as ErrTokenInvalid.
func (s *Service) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	payload, err := s.tokens.Validate(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.users.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func payloadFor(u *domain.User) TokenPayload {
	return TokenPayload{
		UserID:   u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

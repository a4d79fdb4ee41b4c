package auth

import (
	"context"
	"testing"

	domain "library/backend/internal/domain/auth"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*domain.User{},
		byID:    map[string]*domain.User{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return domain.ErrEmailExists
	}
	stored := *user
	f.byEmail[user.Email] = &stored
	f.byID[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

type stubTokenManager struct {
	lastPayload TokenPayload
}

func (s *stubTokenManager) Generate(payload TokenPayload) (string, error) {
	s.lastPayload = payload
	return "token-for-" + payload.UserID, nil
}

func (s *stubTokenManager) Validate(token string) (TokenPayload, error) {
	if token != "token-for-"+s.lastPayload.UserID {
		return TokenPayload{}, domain.ErrTokenInvalid
	}
	return s.lastPayload, nil
}

func TestSignup_HashesPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens := &stubTokenManager{}
	svc := NewService(repo, tokens)

	tok, user, err := svc.Signup(context.Background(), "Reader@Example.com", "hunter2", "reader")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "reader@example.com", user.Email)
	require.Empty(t, user.PasswordHash, "returned user must not expose the hash")

	stored := repo.byEmail["reader@example.com"]
	require.NotNil(t, stored)
	require.NotEmpty(t, stored.PasswordHash)
	require.NotEqual(t, "hunter2", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2")))

	require.Equal(t, user.ID, tokens.lastPayload.UserID)
	require.Equal(t, "reader@example.com", tokens.lastPayload.Email)
	require.Equal(t, "reader", tokens.lastPayload.Username)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewService(repo, &stubTokenManager{})

	_, _, err := svc.Signup(context.Background(), "dup@example.com", "first", "one")
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), "dup@example.com", "second", "two")
	require.ErrorIs(t, err, domain.ErrEmailExists)
	require.Len(t, repo.byEmail, 1)
}

func TestSignin(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens := &stubTokenManager{}
	svc := NewService(repo, tokens)

	_, created, err := svc.Signup(context.Background(), "reader@example.com", "hunter2", "reader")
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Signin(context.Background(), domain.Credentials{
			Email:    "nobody@example.com",
			Password: "hunter2",
		})
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Signin(context.Background(), domain.Credentials{
			Email:    "reader@example.com",
			Password: "wrong",
		})
		require.ErrorIs(t, err, domain.ErrIncorrectPassword)
	})

	t.Run("correct credentials", func(t *testing.T) {
		tok, user, err := svc.Signin(context.Background(), domain.Credentials{
			Email:    "reader@example.com",
			Password: "hunter2",
		})
		require.NoError(t, err)
		require.NotEmpty(t, tok)
		require.Equal(t, created.ID, user.ID)
		require.Equal(t, created.ID, tokens.lastPayload.UserID)
	})
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens := &stubTokenManager{}
	svc := NewService(repo, tokens)

	tok, created, err := svc.Signup(context.Background(), "reader@example.com", "hunter2", "reader")
	require.NoError(t, err)

	user, err := svc.VerifyToken(context.Background(), tok)
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.Empty(t, user.PasswordHash)

	_, err = svc.VerifyToken(context.Background(), "garbage")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyToken_DeletedUser(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens := &stubTokenManager{}
	svc := NewService(repo, tokens)

	tok, created, err := svc.Signup(context.Background(), "gone@example.com", "hunter2", "ghost")
	require.NoError(t, err)

	delete(repo.byID, created.ID)
	delete(repo.byEmail, created.Email)

	_, err = svc.VerifyToken(context.Background(), tok)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

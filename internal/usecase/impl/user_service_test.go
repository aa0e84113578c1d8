package impl

import (
	"context"
	"log/slog"
	"testing"

	"citynav/internal/domain/entity"
	domainerrors "citynav/internal/domain/errors"
	"citynav/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildUserService() (*userService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	srv := &userService{
		userRepo:     userRepo,
		hasher:       &fakeHasher{},
		tokenService: &fakeTokenService{token: "access-token"},
		logger:       slog.Default(),
	}

	return srv, userRepo
}

func TestUserService_RegisterUser(t *testing.T) {
	srv, userRepo := buildUserService()

	output, err := srv.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		Name:     "Aung Aung",
		Email:    "Aung@Example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	user := output.User
	assert.Equal(t, "aung@example.com", user.Email)
	assert.Equal(t, "hashed:s3cret-pass", user.PasswordHash)
	assert.True(t, user.HasRole(entity.RoleUser))
	assert.True(t, user.IsActive)
	assert.NotNil(t, userRepo.byEmail["aung@example.com"])
}

func TestUserService_RegisterUser_DuplicateEmail(t *testing.T) {
	srv, _ := buildUserService()

	input := &usecase.RegisterUserInput{Name: "A", Email: "a@example.com", Password: "pass"}
	_, err := srv.RegisterUser(context.Background(), input)
	require.NoError(t, err)

	_, err = srv.RegisterUser(context.Background(), input)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_Login(t *testing.T) {
	srv, _ := buildUserService()

	_, err := srv.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		Name:     "A",
		Email:    "a@example.com",
		Password: "pass",
	})
	require.NoError(t, err)

	output, err := srv.Login(context.Background(), &usecase.LoginInput{
		Email:    "a@example.com",
		Password: "pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "a@example.com", output.User.Email)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	srv, _ := buildUserService()

	_, err := srv.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		Name:     "A",
		Email:    "a@example.com",
		Password: "pass",
	})
	require.NoError(t, err)

	_, err = srv.Login(context.Background(), &usecase.LoginInput{Email: "a@example.com", Password: "wrong"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	srv, _ := buildUserService()

	_, err := srv.Login(context.Background(), &usecase.LoginInput{Email: "nobody@example.com", Password: "pass"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_DeactivatedAccount(t *testing.T) {
	srv, userRepo := buildUserService()

	_, err := srv.RegisterUser(context.Background(), &usecase.RegisterUserInput{
		Name:     "A",
		Email:    "a@example.com",
		Password: "pass",
	})
	require.NoError(t, err)
	userRepo.byEmail["a@example.com"].IsActive = false

	_, err = srv.Login(context.Background(), &usecase.LoginInput{Email: "a@example.com", Password: "pass"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stateUserExists mockState = 100

var testPasswordHash string

func init() {
	hash, err := service.Hash("secret_password")
	if err != nil {
		panic(err)
	}
	testPasswordHash = hash
}

type usersServiceRepoMock struct {
	state    mockState
	deadline *time.Time
}

func (urmock *usersServiceRepoMock) Create(ctx context.Context, user *entity.User) error {
	switch urmock.state {
	case stateUserExists:
		return errorvalues.ErrUserExists
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func (urmock *usersServiceRepoMock) FindByName(ctx context.Context, name string) (*entity.User, error) {
	switch urmock.state {
	case stateUserNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return &entity.User{
			ID:           ownerID,
			Name:         name,
			PasswordHash: testPasswordHash,
			Deadline:     urmock.deadline,
		}, nil
	}
}

func (urmock *usersServiceRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	switch urmock.state {
	case stateUserNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return &entity.User{
			ID:           id,
			Name:         "test_user",
			PasswordHash: testPasswordHash,
			Deadline:     urmock.deadline,
		}, nil
	}
}

func (urmock *usersServiceRepoMock) UpdateDeadline(ctx context.Context, id uuid.UUID, deadline *time.Time) error {
	switch urmock.state {
	case stateUserNotFound:
		return errorvalues.ErrUserNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		urmock.deadline = deadline
		return nil
	}
}

func (urmock *usersServiceRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	switch urmock.state {
	case stateUserNotFound:
		return errorvalues.ErrUserNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func TestRegister(t *testing.T) {
	service.InitValidator()
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateSuccess})
		user, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Password: "secret_password",
		})
		require.NoError(t, err)
		assert.Equal(t, "test_user", user.Name)
	})
	t.Run("existed user", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateUserExists})
		user, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Password: "secret_password",
		})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("invalid name", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateSuccess})
		user, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "1bad name!",
			Password: "secret_password",
		})
		assert.Nil(t, user)
		assert.Error(t, err)
	})
	t.Run("short password", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateSuccess})
		user, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Password: "short",
		})
		assert.Nil(t, user)
		assert.Error(t, err)
	})
	t.Run("db error", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateDBError})
		user, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Password: "secret_password",
		})
		assert.Nil(t, user)
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateSuccess})
		user, err := us.Login(ctx, "test_user", "secret_password")
		require.NoError(t, err)
		assert.Equal(t, ownerID, user.ID)
	})
	t.Run("wrong password", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateSuccess})
		user, err := us.Login(ctx, "test_user", "not_the_password")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("unexist user", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateUserNotFound})
		user, err := us.Login(ctx, "test_user", "secret_password")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestSetDeadline(t *testing.T) {
	ctx := context.Background()
	t.Run("sets deadline", func(t *testing.T) {
		repo := &usersServiceRepoMock{state: stateSuccess}
		us := service.NewUserService(repo)
		deadline := time.Now().AddDate(0, 2, 0)
		err := us.SetDeadline(ctx, ownerID, &deadline)
		require.NoError(t, err)
		require.NotNil(t, repo.deadline)
		assert.True(t, repo.deadline.Equal(deadline))
	})
	t.Run("clears deadline", func(t *testing.T) {
		deadline := time.Now().AddDate(0, 2, 0)
		repo := &usersServiceRepoMock{state: stateSuccess, deadline: &deadline}
		us := service.NewUserService(repo)
		err := us.SetDeadline(ctx, ownerID, nil)
		require.NoError(t, err)
		assert.Nil(t, repo.deadline)
	})
	t.Run("unexist user", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateUserNotFound})
		err := us.SetDeadline(ctx, ownerID, nil)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateSuccess})
		err := us.DeleteAccount(ctx, ownerID, "secret_password")
		assert.NoError(t, err)
	})
	t.Run("wrong password", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateSuccess})
		err := us.DeleteAccount(ctx, ownerID, "not_the_password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("unexist user", func(t *testing.T) {
		us := service.NewUserService(&usersServiceRepoMock{state: stateUserNotFound})
		err := us.DeleteAccount(ctx, ownerID, "secret_password")
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

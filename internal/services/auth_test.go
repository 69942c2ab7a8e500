package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/pkg/config"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
	"inventory-system/pkg/utils"
)

func newAuthService(t *testing.T) (*AuthService, *fakeLoginAttempts) {
	t.Helper()
	hash, err := utils.HashPassword("secret-pass")
	require.NoError(t, err)

	users := fakeUserRepo{users: map[uint64]entities.User{
		1: {ID: 1, Name: "Admin", Email: "admin@lab.test", Password: hash, Role: constants.RoleAdmin},
	}}
	attempts := newFakeLoginAttempts()
	jwtSvc := service.NewJWTService("test-secret", time.Minute, time.Hour, zap.NewNop())
	cfg := config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: 15 * time.Minute}
	return NewAuthService(users, attempts, jwtSvc, zap.NewNop(), cfg), attempts
}

func TestAuthService_LoginAndRefresh(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, dto.LoginDTO{Email: " Admin@Lab.test ", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Role)
	assert.Equal(t, int64(60), res.ExpiresIn)
	assert.NotEmpty(t, res.AccessToken)

	refreshed, err := svc.Refresh(ctx, dto.RefreshTokenDTO{RefreshToken: res.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), refreshed.User.ID)

	_, err = svc.Refresh(ctx, dto.RefreshTokenDTO{RefreshToken: res.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestAuthService_Lockout(t *testing.T) {
	svc, attempts := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginDTO{Email: "nobody@lab.test", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, dto.LoginDTO{Email: "admin@lab.test", Password: "wrong-pass"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "admin@lab.test", Password: "secret-pass"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)

	attempts.unlock("admin@lab.test")
	_, err = svc.Login(ctx, dto.LoginDTO{Email: "admin@lab.test", Password: "secret-pass"})
	assert.NoError(t, err)
}

func TestAuthService_SuccessResetsFailures(t *testing.T) {
	svc, attempts := newAuthService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, dto.LoginDTO{Email: "admin@lab.test", Password: "wrong-pass"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
	_, err := svc.Login(ctx, dto.LoginDTO{Email: "admin@lab.test", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Zero(t, attempts.failures["admin@lab.test"])

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "admin@lab.test", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.False(t, attempts.locked["admin@lab.test"])
}

func TestAuthService_AttemptStoreDown(t *testing.T) {
	svc, attempts := newAuthService(t)
	attempts.err = errors.New("redis: connection refused")

	res, err := svc.Login(context.Background(), dto.LoginDTO{Email: "admin@lab.test", Password: "secret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
}

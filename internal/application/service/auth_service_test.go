package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/sangkips/stockroom-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, sv *services, username, password string, role enum.Role, active bool) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := &entity.User{Username: username, Password: hash, Role: role, IsActive: active}
	require.NoError(t, fakeUsers{sv.store}.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	sv := newServices()
	user := seedUser(t, sv, "mary", "s3cret-pass", enum.RoleManager, true)

	out, err := sv.auth.Login(context.Background(), &LoginInput{Username: "Mary", Password: "s3cret-pass", Role: enum.RoleManager})

	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, "/reports/stock", out.Redirect)
	assert.Equal(t, int64(3600), out.ExpiresIn)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotNil(t, sv.store.users[user.ID].LastLoginAt)
}

func TestLoginFailures(t *testing.T) {
	sv := newServices()
	seedUser(t, sv, "mary", "s3cret-pass", enum.RoleManager, true)
	seedUser(t, sv, "old", "s3cret-pass", enum.RoleCashier, false)

	tests := []struct {
		name  string
		input LoginInput
		want  *apperror.AppError
	}{
		{"wrong password", LoginInput{Username: "mary", Password: "nope", Role: enum.RoleManager}, apperror.ErrInvalidCredentials},
		{"role mismatch", LoginInput{Username: "mary", Password: "s3cret-pass", Role: enum.RoleAdmin}, apperror.ErrInvalidCredentials},
		{"unknown user", LoginInput{Username: "ghost", Password: "s3cret-pass", Role: enum.RoleAdmin}, apperror.ErrInvalidCredentials},
		{"disabled", LoginInput{Username: "old", Password: "s3cret-pass", Role: enum.RoleCashier}, apperror.ErrAccountDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sv.auth.Login(context.Background(), &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoginRequiresFields(t *testing.T) {
	sv := newServices()

	_, err := sv.auth.Login(context.Background(), &LoginInput{})

	appErr := apperror.GetAppError(err)
	require.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Errors, 3)
}

func TestLogoutRevokesToken(t *testing.T) {
	sv := newServices()
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	token, err := jwt.GenerateAccessToken(seedUser(t, sv, "mary", "pw", enum.RoleAdmin, true).ID, "mary", "admin")
	require.NoError(t, err)
	claims, err := jwt.ValidateAccessToken(token)
	require.NoError(t, err)

	require.NoError(t, sv.auth.Logout(context.Background(), claims))

	revoked, err := sv.revoked.IsRevoked(context.Background(), claims.TokenID())
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.InDelta(t, time.Hour.Seconds(), sv.revoked.ids[claims.TokenID()].Seconds(), 5)
}

func TestChangePassword(t *testing.T) {
	sv := newServices()
	ctx := context.Background()
	user := seedUser(t, sv, "mary", "old-password", enum.RoleCashier, true)

	err := sv.auth.ChangePassword(ctx, &ChangePasswordInput{UserID: user.ID, CurrentPassword: "wrong", NewPassword: "new-password"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	require.NoError(t, sv.auth.ChangePassword(ctx, &ChangePasswordInput{UserID: user.ID, CurrentPassword: "old-password", NewPassword: "new-password"}))

	_, err = sv.auth.Login(ctx, &LoginInput{Username: "mary", Password: "new-password", Role: enum.RoleCashier})
	assert.NoError(t, err)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	sv := newServices()
	ctx := context.Background()

	require.NoError(t, sv.auth.EnsureAdmin(ctx, "root", "change-me", "Root"))
	require.NoError(t, sv.auth.EnsureAdmin(ctx, "root", "other", "Root"))
	require.NoError(t, sv.auth.EnsureAdmin(ctx, "", "", ""))

	require.Len(t, sv.store.users, 1)
	for _, u := range sv.store.users {
		assert.Equal(t, enum.RoleAdmin, u.Role)
		assert.True(t, utils.CheckPasswordHash("change-me", u.Password))
	}
}

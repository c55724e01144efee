package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apierrors "github.com/conectapro/backend/internal/errors"
	"github.com/conectapro/backend/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "auth.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return NewService(db, "test-secret")
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Register("Usuario@Example.com", "long-password")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "usuario@example.com", resp.User.Email)

	login, err := svc.Login("usuario@example.com", "long-password")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register("not-an-email", "long-password")
	require.Error(t, err)

	_, err = svc.Register("ok@example.com", "short")
	require.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register("dup@example.com", "long-password")
	require.NoError(t, err)

	_, err = svc.Register("DUP@example.com", "long-password")
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.CodeEmailTaken, apiErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register("u@example.com", "long-password")
	require.NoError(t, err)

	_, err = svc.Login("u@example.com", "wrong-password")
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.CodeInvalidCredentials, apiErr.Code)

	_, err = svc.Login("nobody@example.com", "long-password")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.CodeInvalidCredentials, apiErr.Code)
}

func TestValidateToken(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Register("u@example.com", "long-password")
	require.NoError(t, err)

	userID, email, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, "u@example.com", email)

	_, _, err = svc.ValidateToken("garbage.token.value")
	require.Error(t, err)

	other := NewService(svc.db, "different-secret")
	_, _, err = other.ValidateToken(resp.Token)
	require.Error(t, err, "tokens signed with another secret are rejected")
}

package service

import (
	"testing"
	"time"

	"menuboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestAuthorizeRetraction(t *testing.T) {
	t.Parallel()

	owner := "device-abc"
	stranger := "device-xyz"
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("owner within window is allowed", func(t *testing.T) {
		t.Parallel()
		err := AuthorizeRetraction(&owner, createdAt.Unix(), owner, createdAt.Add(10*time.Minute))
		assert.NoError(t, err)
	})

	t.Run("window boundary is inclusive", func(t *testing.T) {
		t.Parallel()
		err := AuthorizeRetraction(&owner, createdAt.Unix(), owner, createdAt.Add(RetractionWindow))
		assert.NoError(t, err)

		err = AuthorizeRetraction(&owner, createdAt.Unix(), owner, createdAt.Add(RetractionWindow-time.Second))
		assert.NoError(t, err)
	})

	t.Run("owner after window gets expired", func(t *testing.T) {
		t.Parallel()
		err := AuthorizeRetraction(&owner, createdAt.Unix(), owner, createdAt.Add(RetractionWindow+time.Second))
		assertAppErrorCode(t, err, "EXPIRED")
	})

	t.Run("stranger gets forbidden", func(t *testing.T) {
		t.Parallel()
		err := AuthorizeRetraction(&owner, createdAt.Unix(), stranger, createdAt.Add(time.Minute))
		assertAppErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("ownership is checked before the window", func(t *testing.T) {
		t.Parallel()
		// A stranger probing an old record must never learn it is expired.
		err := AuthorizeRetraction(&owner, createdAt.Unix(), stranger, createdAt.Add(2*time.Hour))
		assertAppErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("nil owner never authorizes anyone", func(t *testing.T) {
		t.Parallel()
		err := AuthorizeRetraction(nil, createdAt.Unix(), owner, createdAt.Add(time.Minute))
		assertAppErrorCode(t, err, "FORBIDDEN")

		err = AuthorizeRetraction(nil, createdAt.Unix(), "", createdAt.Add(time.Minute))
		assertAppErrorCode(t, err, "FORBIDDEN")
	})
}

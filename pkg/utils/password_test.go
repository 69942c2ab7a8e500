package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "inventory-system/pkg/errors"
)

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("lab-admin-2026")
	require.NoError(t, err)
	assert.NotEqual(t, "lab-admin-2026", hash)

	assert.NoError(t, ComparePasswords(hash, "lab-admin-2026"))
	assert.ErrorIs(t, ComparePasswords(hash, "lab-admin-2025"), apperrors.ErrInvalidCredentials)

	err = ComparePasswords("not-a-hash", "lab-admin-2026")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = HashPassword(strings.Repeat("x", 80))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAs_ExtractsFromWrappedChain(t *testing.T) {
	base := InsufficientStock("item-1", "store-1")
	wrapped := fmt.Errorf("creating order: %w", base)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInsufficientStock, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
	assert.Equal(t, "item-1", appErr.Details["item_id"])
}

func TestIsCode(t *testing.T) {
	err := ScopeForbidden("store-9")

	assert.True(t, IsCode(err, CodeScopeForbidden))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeScopeForbidden))
}

func TestScopeForbidden_IsNotNotFound(t *testing.T) {
	err := ScopeForbidden("store-9")

	assert.Equal(t, http.StatusForbidden, err.HTTPStatus)
	assert.NotEqual(t, CodeNotFound, err.Code)
}

func TestInternal_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("db write failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "db write failed")
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"not found", NotFound("item"), http.StatusNotFound},
		{"scope", ScopeForbidden("s"), http.StatusForbidden},
		{"insufficient", InsufficientStock("i", "s"), http.StatusConflict},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"internal", Internal("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

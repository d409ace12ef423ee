package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorWrapsUntypedErrors(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))
	require.NotNil(t, appErr)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.EqualError(t, appErr, "internal server error: boom")
}

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("layer: %w", Clone(ErrInvalidParameter, "bad page"))
	appErr := FromError(wrapped)
	assert.Equal(t, "INVALID_PARAMETER", appErr.Code)
	assert.Equal(t, "bad page", appErr.Message)
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(errors.New("conn refused"), ErrStore.Code, ErrStore.Status, "failed to count offers")
	assert.True(t, errors.Is(err, ErrStore))
	assert.False(t, errors.Is(err, ErrInvalidParameter))
}

func TestWithDetailsCopies(t *testing.T) {
	details := map[string]string{"page": "must be a positive integer"}
	appErr := WithDetails(ErrInvalidParameter, details)
	details["page"] = "mutated"

	assert.Equal(t, "must be a positive integer", appErr.Details["page"])
	assert.Nil(t, ErrInvalidParameter.Details)
}

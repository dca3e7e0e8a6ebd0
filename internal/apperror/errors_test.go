package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
)

func TestNotFoundBuildsResourceCode(t *testing.T) {
	err := apperror.NotFound(apperror.ResourceTherapyService)
	require.Equal(t, "THERAPY_SERVICE_NOT_FOUND", err.Code)
	require.Equal(t, http.StatusNotFound, err.Status)
	require.Equal(t, "Therapy service not found.", err.Message)
}

func TestNotFoundCarriesMissingIDs(t *testing.T) {
	err := apperror.NotFound(apperror.ResourceDocument, "a", "b")
	require.Equal(t, "DOCUMENT_NOT_FOUND", err.Code)
	require.Equal(t, []string{"a", "b"}, err.Errors)
}

func TestErrorsMatchByCodeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", apperror.NotFound(apperror.ResourceUser))
	require.True(t, errors.Is(wrapped, apperror.NotFound(apperror.ResourceUser)))
	require.False(t, errors.Is(wrapped, apperror.NotFound(apperror.ResourceSchool)))

	var appErr *apperror.Error
	require.True(t, errors.As(wrapped, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestInvalidRequestKeepsEveryFieldError(t *testing.T) {
	err := apperror.InvalidRequest("email: is required", "status: must be one of [ACTIVE INACTIVE]")
	require.Equal(t, apperror.CodeInvalidRequest, err.Code)
	require.Equal(t, "Invalid request.", err.Message)
	require.Len(t, err.Errors, 2)
	require.Contains(t, err.Error(), "email: is required")
}

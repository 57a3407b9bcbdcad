package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		severity Severity
	}{
		{ErrCodeConfigInvalid, CategoryConfig, SeverityError},
		{ErrCodeDatasetNotFound, CategoryData, SeverityError},
		{ErrCodeVectorUnavailable, CategoryCollaborator, SeverityWarning},
		{ErrCodeQueryEmpty, CategoryValidation, SeverityError},
		{ErrCodeInternal, CategoryInternal, SeverityFatal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "boom", nil)
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

func TestError_FormatAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := New(ErrCodeStoreFailed, "write failed", cause)

	assert.Equal(t, "[ERR_203_STORE_FAILED] write failed", err.Error())
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := New(ErrCodeQueryEmpty, "query is empty", nil)

	assert.True(t, stderrors.Is(err, New(ErrCodeQueryEmpty, "other message", nil)))
	assert.False(t, stderrors.Is(err, New(ErrCodeQueryTooLong, "query is empty", nil)))
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))

	wrapped := Wrap(ErrCodeSearchFailed, fmt.Errorf("index gone"))
	require.NotNil(t, wrapped)
	assert.Equal(t, "index gone", wrapped.Message)
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeInvalidTopK, "top_k out of range", nil).
		WithDetail("top_k", "99").
		WithDetail("max", "50")

	assert.Equal(t, "99", err.Details["top_k"])
	assert.Equal(t, "50", err.Details["max"])
}

func TestIsValidationAndGetCode(t *testing.T) {
	verr := ValidationError(ErrCodeQueryTooLong, "too long")
	assert.True(t, IsValidation(verr))
	assert.Equal(t, ErrCodeQueryTooLong, GetCode(verr))

	plain := fmt.Errorf("plain")
	assert.False(t, IsValidation(plain))
	assert.Empty(t, GetCode(plain))
}

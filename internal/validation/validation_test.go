package validation

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyarthi-io/scholarseek/internal/errors"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		want     string
		wantCode string
	}{
		{"valid", "merit scholarship", "merit scholarship", ""},
		{"trimmed", "  sc students  ", "sc students", ""},
		{"empty", "", "", errors.ErrCodeQueryEmpty},
		{"whitespace only", "   \t  ", "", errors.ErrCodeQueryEmpty},
		{"at limit", strings.Repeat("a", MaxQueryLength), strings.Repeat("a", MaxQueryLength), ""},
		{"over limit", strings.Repeat("a", MaxQueryLength+1), "", errors.ErrCodeQueryTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Query(tt.query)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestTopK(t *testing.T) {
	assert.NoError(t, TopK(1))
	assert.NoError(t, TopK(20))
	assert.NoError(t, TopK(50))

	err := TopK(0)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidTopK, errors.GetCode(err))

	assert.Error(t, TopK(51))
	assert.Error(t, TopK(-3))

	var serr *errors.Error
	require.True(t, stderrors.As(TopK(99), &serr))
	assert.Equal(t, "99", serr.Details["top_k"])
}

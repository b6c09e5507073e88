package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templer-labs/templer/internal/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{"template_not_found", errors.ErrTemplateNotFound, "no-template", "[TEMPLATE_NOT_FOUND] no-template"},
		{"syntax", errors.ErrSyntax, "bad option", "[SYNTAX] bad option"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil_error_stays_nil", func(t *testing.T) {
		assert.NoError(t, errors.Wrap(nil, errors.ErrRender, "rendering"))
		assert.NoError(t, errors.Wrapf(nil, errors.ErrRender, "rendering %s", "x"))
	})

	t.Run("wrapped_error_is_reachable", func(t *testing.T) {
		base := stderrors.New("disk full")
		err := errors.Wrapf(base, errors.ErrFileWrite, "writing %s", "setup.py")

		assert.True(t, stderrors.Is(err, base))
		assert.Equal(t, "[FILE_WRITE] writing setup.py: disk full", err.Error())
		assert.Equal(t, "writing setup.py: disk full", errors.Message(err))
	})
}

func TestIsAndCodes(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrTemplateNotFound, "missing"))

	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
	assert.False(t, errors.IsErrorCode(err, errors.ErrSyntax))
	assert.Equal(t, errors.ErrTemplateNotFound, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrTemplateNotFound, "other message")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrTemplateCycle, "cycle").WithDetail("path", []string{"a", "b", "a"})
	require.Contains(t, err.Details, "path")
	assert.Equal(t, []string{"a", "b", "a"}, err.Details["path"])
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "plain", errors.Message(stderrors.New("plain")))
	assert.Equal(t, "No such template: x", errors.Message(errors.Newf(errors.ErrTemplateNotFound, "No such template: %s", "x")))
}

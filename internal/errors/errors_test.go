package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormat(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := New(ErrConfig, "No config file found", "")
		assert.Equal(t, "✗ No config file found\n", err.Error())
	})

	t.Run("message and suggestion", func(t *testing.T) {
		err := New(ErrConfig, "No config file found", "Run 'ccpanel init' to create one")
		assert.Equal(t, "✗ No config file found\n\n  Run 'ccpanel init' to create one\n", err.Error())
	})

	t.Run("message, cause, and suggestion", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := WrapWithCode(cause, ErrAPI, "Bridge unreachable", "Check the bridge is running")
		assert.Equal(t, "✗ Bridge unreachable\n\n  connection refused\n\n  Check the bridge is running\n", err.Error())
	})
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(cause, "Something failed")

	assert.Equal(t, ErrAPI, err.Code)
	assert.Equal(t, cause, err.Cause)
	assert.True(t, stderrors.Is(err, cause))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	wrapped := WrapWithCode(cause, ErrTask, "Task failed", "")

	assert.Equal(t, cause, stderrors.Unwrap(wrapped))

	var pErr *Error
	require.True(t, stderrors.As(wrapped, &pErr))
	assert.Equal(t, ErrTask, pErr.Code)
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"matching code", New(ErrValidate, "bad", ""), ErrValidate, true},
		{"different code", New(ErrValidate, "bad", ""), ErrConfig, false},
		{"nil error", nil, ErrConfig, false},
		{"plain error", fmt.Errorf("plain"), ErrAPI, false},
		{"wrapped structured error", fmt.Errorf("outer: %w", New(ErrTask, "inner", "")), ErrTask, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCode(tt.err, tt.code))
		})
	}
}

func TestNewNoSelection(t *testing.T) {
	err := NewNoSelection()
	assert.Equal(t, ErrValidate, err.Code)
	assert.Equal(t, "No device selected", err.Message)
	assert.NotEmpty(t, err.Suggestion)
}

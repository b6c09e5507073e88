package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templer-labs/templer/internal/errors"
)

func TestLineReadsAnswers(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("first\r\nsecond\nlast"), &out)
	ctx := context.Background()

	for _, want := range []string{"first", "second", "last"} {
		got, err := c.Line(ctx, "Q: ", true)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := c.Line(ctx, "Q: ", true)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAborted))
	assert.Equal(t, "Q: Q: Q: Q: ", out.String())
}

func TestLineWithoutEchoOnPipe(t *testing.T) {
	c := NewConsole(strings.NewReader("secret\n"), io.Discard)
	got, err := c.Line(context.Background(), "Password: ", false)
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
}

func TestLineCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := NewConsole(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Line(ctx, "Q: ", true)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAborted))

	// The outstanding read is delivered to the next call.
	go func() { _, _ = pw.Write([]byte("late\n")) }()
	got, err := c.Line(context.Background(), "Q: ", true)
	require.NoError(t, err)
	assert.Equal(t, "late", got)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{"yes", "y\n", false, true},
		{"no", "no\n", true, false},
		{"empty_uses_default_no", "\n", false, false},
		{"empty_uses_default_yes", "\n", true, true},
		{"reasks_on_garbage", "maybe\nY\n", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConsole(strings.NewReader(tt.input), &out)
			got, err := c.Confirm(context.Background(), "Overwrite?", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmHint(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("\n"), &out)
	_, err := c.Confirm(context.Background(), "Overwrite file?", false)
	require.NoError(t, err)
	assert.Equal(t, "Overwrite file? [y/N] ", out.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(strings.NewReader("")))
}

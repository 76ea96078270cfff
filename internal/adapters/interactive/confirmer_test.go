package interactive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
)

// trackedInput records whether the confirmer released its input
type trackedInput struct {
	io.Reader
	closed int
}

func (t *trackedInput) Close() error {
	t.closed++
	return nil
}

func sourceOf(input *trackedInput) InputSource {
	return func() (io.ReadCloser, error) { return input, nil }
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("terminal went away") }

func TestLineConfirmer_AffirmativePolicy(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{" y \n", false},
		{"y \n", false},
		{"y\r\n", true},
		{"y", true},
		{"n\n", false},
		{"\n", false},
		{"yes\n", false},
		{"maybe\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.input), func(t *testing.T) {
			input := &trackedInput{Reader: strings.NewReader(tt.input)}
			var out bytes.Buffer

			ok, err := NewLineConfirmer(sourceOf(input), &out).Confirm(context.Background(), "Continue?")

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, 1, input.closed, "input released exactly once")
			assert.Equal(t, "Continue? (y/N) ", out.String())
		})
	}
}

func TestLineConfirmer_ReadErrorDeclines(t *testing.T) {
	input := &trackedInput{Reader: failingReader{}}

	ok, err := NewLineConfirmer(sourceOf(input), io.Discard).Confirm(context.Background(), "Continue?")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, input.closed)
}

func TestLineConfirmer_OpenFailure(t *testing.T) {
	open := func() (io.ReadCloser, error) { return nil, errors.New("no tty") }

	ok, err := NewLineConfirmer(open, io.Discard).Confirm(context.Background(), "Continue?")

	assert.False(t, ok)
	assert.ErrorContains(t, err, "no tty")
}

func TestLineConfirmer_CancelledContext(t *testing.T) {
	input := &trackedInput{Reader: strings.NewReader("y\n")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := NewLineConfirmer(sourceOf(input), io.Discard).Confirm(ctx, "Continue?")

	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, input.closed, "input never acquired")
}

func TestAutoConfirmer(t *testing.T) {
	var out bytes.Buffer

	ok, err := NewAutoConfirmer(&out).Confirm(context.Background(), "Deploy?")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Deploy?")
}

func TestNewConfirmer(t *testing.T) {
	assert.IsType(t, &AutoConfirmer{}, NewConfirmer(&config.RuntimeConfig{AssumeYes: true}))
	assert.IsType(t, &AutoConfirmer{}, NewConfirmer(&config.RuntimeConfig{NonInteractive: true}))
}

func TestIsAffirmative(t *testing.T) {
	assert.True(t, isAffirmative("y"))
	assert.True(t, isAffirmative("Y\r\n"))
	assert.False(t, isAffirmative("yy"))
	assert.False(t, isAffirmative("no"))
	assert.False(t, isAffirmative(" y"))
	assert.False(t, isAffirmative("y\t"))
}

type discardCloser struct{ io.Writer }

func (discardCloser) Close() error { return nil }

func TestPromptConfirmer_AffirmativePolicy(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "Y", input: "Y\n", want: true},
		{name: "yes", input: "yes\n", want: false},
		{name: "n", input: "n\n", want: false},
		{name: "empty line", input: "\n", want: false},
		{name: "maybe", input: "maybe\n", want: false},
		{name: "eof", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := &trackedInput{Reader: strings.NewReader(tt.input)}
			confirmer := &PromptConfirmer{open: sourceOf(input), out: discardCloser{io.Discard}}

			ok, err := confirmer.Confirm(context.Background(), "Continue?")

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, 1, input.closed, "input released exactly once")
		})
	}
}

func TestPromptConfirmer_OpenFailure(t *testing.T) {
	open := func() (io.ReadCloser, error) { return nil, errors.New("no tty") }

	ok, err := NewPromptConfirmer(open).Confirm(context.Background(), "Continue?")

	assert.False(t, ok)
	assert.ErrorContains(t, err, "no tty")
}

package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// InputSource acquires the stream one confirmation reads from
type InputSource func() (io.ReadCloser, error)

// StdinSource hands out stdin without closing the process's descriptor
func StdinSource() (io.ReadCloser, error) {
	return io.NopCloser(os.Stdin), nil
}

// isAffirmative reports whether an answer confirms. Only "y" does, in any case,
// with nothing around it but the line ending.
func isAffirmative(answer string) bool {
	return strings.EqualFold(strings.TrimRight(answer, "\r\n"), "y")
}

// LineConfirmer prints the question and reads a single line
type LineConfirmer struct {
	open InputSource
	out  io.Writer
}

// NewLineConfirmer creates a confirmer reading lines from the given source
func NewLineConfirmer(open InputSource, out io.Writer) *LineConfirmer {
	return &LineConfirmer{open: open, out: out}
}

// Confirm blocks until a line is read. EOF and read errors decline.
func (c *LineConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	in, err := c.open()
	if err != nil {
		return false, fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	fmt.Fprintf(c.out, "%s (y/N) ", message)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, nil
	}
	return isAffirmative(line), nil
}

// PromptConfirmer renders the question with promptui on a terminal
type PromptConfirmer struct {
	open InputSource
	out  io.WriteCloser // nil renders to stdout
}

// NewPromptConfirmer creates a terminal confirmer
func NewPromptConfirmer(open InputSource) *PromptConfirmer {
	return &PromptConfirmer{open: open}
}

// Confirm runs a yes/no prompt. Anything but "y" declines, including Ctrl-C.
func (c *PromptConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	in, err := c.open()
	if err != nil {
		return false, fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
		Stdin:     in,
		Stdout:    c.out,
	}

	answer, err := prompt.Run()
	if err != nil {
		return false, nil
	}
	return isAffirmative(answer), nil
}

// AutoConfirmer answers yes without reading input
type AutoConfirmer struct {
	out io.Writer
}

// NewAutoConfirmer creates a confirmer for --yes and non-interactive runs
func NewAutoConfirmer(out io.Writer) *AutoConfirmer {
	return &AutoConfirmer{out: out}
}

// Confirm prints the question and proceeds
func (c *AutoConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(c.out, "%s %s\n", message, color.New(color.FgYellow).Sprint("(auto-confirmed)"))
	return true, nil
}

// NewConfirmer picks the confirmer for the current run
func NewConfirmer(cfg *config.RuntimeConfig) usecase.Confirmer {
	if cfg.AssumeYes || cfg.NonInteractive {
		return NewAutoConfirmer(os.Stderr)
	}
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return NewPromptConfirmer(StdinSource)
	}
	return NewLineConfirmer(StdinSource, os.Stderr)
}

var (
	_ usecase.Confirmer = (*LineConfirmer)(nil)
	_ usecase.Confirmer = (*PromptConfirmer)(nil)
	_ usecase.Confirmer = (*AutoConfirmer)(nil)
)

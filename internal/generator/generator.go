// Package generator runs the upstream project generator that the Electron
// integration is layered on top of. The generator is opaque: it scaffolds on
// its own and nothing it produces is consumed here.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DefaultCommand runs the Feathers application generator.
var DefaultCommand = []string{"yo", "feathers"}

// Base is the upstream generator.
type Base interface {
	Initialize(ctx context.Context) error
}

// Noop is a Base that does nothing.
type Noop struct{}

// Initialize implements Base.
func (Noop) Initialize(context.Context) error { return nil }

// Command runs an external generator command in a directory. The generator
// is interactive, so it shares the caller's terminal.
type Command struct {
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ParseCommand splits a whitespace separated command line.
func ParseCommand(line string) ([]string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil, errors.New("base generator command is empty")
	}
	return args, nil
}

// Initialize implements Base.
func (c *Command) Initialize(ctx context.Context) error {
	if len(c.Args) == 0 {
		return errors.New("base generator command is empty")
	}

	bin, err := exec.LookPath(c.Args[0])
	if err != nil {
		return fmt.Errorf("base generator %s not found in PATH: %w", c.Args[0], err)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("base generator %q failed: %w", strings.Join(c.Args, " "), err)
	}

	return nil
}

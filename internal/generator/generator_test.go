package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	args, err := ParseCommand("  yo   feathers --skip-install ")
	require.NoError(t, err)
	require.Equal(t, []string{"yo", "feathers", "--skip-install"}, args)

	_, err = ParseCommand("   ")
	require.Error(t, err)
}

func TestNoop(t *testing.T) {
	require.NoError(t, Noop{}.Initialize(context.Background()))
}

func TestCommand_Initialize(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	var out bytes.Buffer

	cmd := &Command{Args: []string{"sh", "-c", "pwd"}, Dir: dir, Stdout: &out}
	require.NoError(t, cmd.Initialize(context.Background()))

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(string(bytes.TrimSpace(out.Bytes())))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCommand_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	cmd := &Command{Args: []string{"sh", "-c", "exit 3"}, Dir: os.TempDir()}
	err := cmd.Initialize(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), `base generator "sh -c exit 3" failed`)
}

func TestCommand_NotFound(t *testing.T) {
	cmd := &Command{Args: []string{"definitely-not-a-generator-binary"}}
	err := cmd.Initialize(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found in PATH")
}

package npm

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/jakoblorz/feathers-electron/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestManager_Args(t *testing.T) {
	pkgs := []string{"a", "b"}

	tests := []struct {
		manager Manager
		kind    DependencyKind
		want    []string
	}{
		{NPM, Dev, []string{"install", "--save-dev", "a", "b"}},
		{NPM, Runtime, []string{"install", "--save", "a", "b"}},
		{Yarn, Dev, []string{"add", "--dev", "a", "b"}},
		{Yarn, Runtime, []string{"add", "a", "b"}},
		{PNPM, Dev, []string{"add", "--save-dev", "a", "b"}},
		{PNPM, Runtime, []string{"add", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.manager)+"/"+string(tt.kind), func(t *testing.T) {
			require.Equal(t, tt.want, tt.manager.Args(tt.kind, pkgs))
		})
	}
}

func TestParseManager(t *testing.T) {
	m, err := ParseManager(" Yarn ")
	require.NoError(t, err)
	require.Equal(t, Yarn, m)

	_, err = ParseManager("bun")
	require.ErrorIs(t, err, ErrUnknownManager)
}

func TestDetectManager(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/app/package.json", []byte("{}"))
	require.Equal(t, NPM, DetectManager(fs, "/app"))

	fs.AddFile("/app/yarn.lock", nil)
	require.Equal(t, Yarn, DetectManager(fs, "/app"))

	fs.AddFile("/app/pnpm-lock.yaml", nil)
	require.Equal(t, PNPM, DetectManager(fs, "/app"))
}

// fakeManager puts an executable named after the manager on PATH that
// records its arguments and exits with code.
func fakeManager(t *testing.T, name string, code int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}

	bin := t.TempDir()
	script := "#!/bin/sh\necho \"$@\" >> \"$(dirname \"$0\")/calls.log\"\necho oops >&2\nexit " + strconv.Itoa(code) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(bin, name), []byte(script), 0755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	return bin
}

func TestOSInstaller_Install(t *testing.T) {
	bin := fakeManager(t, "npm", 0)
	dir := t.TempDir()

	inst := NewOSInstaller(NPM, dir)
	require.Equal(t, NPM, inst.Manager())

	err := inst.Install(context.Background(), Runtime, RuntimeDependencies)
	require.NoError(t, err)

	log, err := os.ReadFile(filepath.Join(bin, "calls.log"))
	require.NoError(t, err)
	require.Equal(t, "install --save concurrently cross-env electron-debug", strings.TrimSpace(string(log)))
}

func TestOSInstaller_Failure(t *testing.T) {
	fakeManager(t, "yarn", 1)

	err := NewOSInstaller(Yarn, t.TempDir()).Install(context.Background(), Dev, []string{"electron"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to install dev dependencies (electron)")
	require.Contains(t, err.Error(), "oops")
}

func TestOSInstaller_NoPackages(t *testing.T) {
	err := NewOSInstaller(Manager("does-not-exist"), t.TempDir()).Install(context.Background(), Dev, nil)
	require.NoError(t, err)
}

func TestDetectingInstaller_DetectsOnFirstInstall(t *testing.T) {
	bin := fakeManager(t, "yarn", 0)
	dir := t.TempDir()
	fs := filesystem.NewOSFileSystem()

	inst := NewDetectingInstaller(fs, dir, nil)

	// The lock file appears after construction, as it would once the base
	// generator has run.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yarn.lock"), nil, 0644))

	require.NoError(t, inst.Install(context.Background(), Dev, []string{"electron"}))
	require.Equal(t, Yarn, inst.Manager())

	log, err := os.ReadFile(filepath.Join(bin, "calls.log"))
	require.NoError(t, err)
	require.Equal(t, "add --dev electron", strings.TrimSpace(string(log)))
}

package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakoblorz/feathers-electron/internal/filesystem"
	"github.com/stretchr/testify/require"
)

const testRoot = "/test-project"

func buildProject(t *testing.T, dirs []string, files []string) *filesystem.MockFileSystem {
	t.Helper()

	fs := filesystem.NewMockFileSystem()
	fs.AddDir(testRoot)
	fs.AddFile(filepath.Join(testRoot, "package.json"), []byte(`{"name":"my-app"}`))
	for _, dir := range dirs {
		fs.AddDir(filepath.Join(testRoot, dir))
	}
	for _, file := range files {
		fs.AddFile(filepath.Join(testRoot, file), []byte("x"))
	}
	fs.SetCurrentDir(testRoot)

	return fs
}

func TestListCandidates_FiltersReservedNames(t *testing.T) {
	fs := buildProject(t,
		[]string{"src", "public", "test", "config", "node_modules", ".git", ".vscode", "Tests", "myConfigs", "lib", "latest"},
		[]string{"README.md", "index.js"},
	)

	candidates, err := ListCandidates(fs, testRoot)
	require.NoError(t, err)

	require.Equal(t, []string{"lib", "public", "src"}, candidates)
}

func TestListCandidates_SkipsFilesAndSymlinks(t *testing.T) {
	fs := buildProject(t, []string{"src", "real"}, []string{"app"})
	fs.AddSymlink(filepath.Join(testRoot, "linked"), filepath.Join(testRoot, "real"))

	candidates, err := ListCandidates(fs, testRoot)
	require.NoError(t, err)

	require.Equal(t, []string{"real", "src"}, candidates)
}

func TestListCandidates_Empty(t *testing.T) {
	fs := buildProject(t, []string{"test", "config"}, nil)

	candidates, err := ListCandidates(fs, testRoot)
	require.NoError(t, err)
	require.Empty(t, candidates)
}

func TestListCandidates_StatError(t *testing.T) {
	fs := buildProject(t, []string{"src"}, nil)
	boom := errors.New("boom")
	fs.FailOn("lstat", filepath.Join(testRoot, "src"), boom)

	_, err := ListCandidates(fs, testRoot)
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "failed to stat src")
}

func TestListCandidates_ReadDirError(t *testing.T) {
	fs := buildProject(t, nil, nil)
	fs.FailOn("readdir", testRoot, os.ErrPermission)

	_, err := ListCandidates(fs, testRoot)
	require.ErrorIs(t, err, os.ErrPermission)
}

func TestListCandidates_RespectGitIgnore(t *testing.T) {
	fs := buildProject(t, []string{"src", "dist", "public"}, nil)
	fs.AddFile(filepath.Join(testRoot, ".gitignore"), []byte("dist/\n"))

	candidates, err := ListCandidates(fs, testRoot)
	require.NoError(t, err)
	require.Equal(t, []string{"dist", "public", "src"}, candidates)

	candidates, err = ListCandidates(fs, testRoot, WithGitIgnore(true))
	require.NoError(t, err)
	require.Equal(t, []string{"public", "src"}, candidates)
}

func TestSortCandidates(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "uppercase sorts before lowercase",
			input: []string{"zeta", "Alpha", "beta"},
			want:  []string{"Alpha", "beta", "zeta"},
		},
		{
			name:  "ties keep listing order",
			input: []string{"src", "server", "app", "shared"},
			want:  []string{"app", "src", "server", "shared"},
		},
		{
			name:  "digits before letters",
			input: []string{"b", "1st", "A"},
			want:  []string{"1st", "A", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := append([]string(nil), tt.input...)
			SortCandidates(names)
			require.Equal(t, tt.want, names)
		})
	}
}

func TestIsReserved(t *testing.T) {
	for _, name := range []string{"test", "__tests__", "CONFIG", "node_modules", ".github", "e2e-Test"} {
		require.True(t, IsReserved(name), name)
	}
	for _, name := range []string{"src", "public", "lib", "app"} {
		require.False(t, IsReserved(name), name)
	}
}

package git

import (
	"context"
)

// GitClient provides an abstraction over the git operations used to guard a
// project before its files are rewritten.
//
// Every operation takes the directory to run in; a directory outside any
// work tree is not an error.
type GitClient interface {
	// IsGitRepo reports whether dir is inside a git work tree.
	IsGitRepo(ctx context.Context, dir string) (bool, error)

	// UncommittedFiles returns the files among paths (relative to dir) that
	// differ from HEAD, including untracked ones. No paths means the whole
	// work tree. Returned paths are relative to the repository root.
	UncommittedFiles(ctx context.Context, dir string, paths ...string) ([]string, error)
}

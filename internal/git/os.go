package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// OSGitClient implements GitClient using real git commands
type OSGitClient struct{}

// NewOSGitClient creates a new OSGitClient
func NewOSGitClient() *OSGitClient {
	return &OSGitClient{}
}

// IsGitRepo checks if dir is inside a git work tree. A missing git binary
// counts as no repository.
func (g *OSGitClient) IsGitRepo(ctx context.Context, dir string) (bool, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return false, nil
	}

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Not a git repo
			return false, nil
		}
		return false, fmt.Errorf("failed to run git in %s: %w", dir, err)
	}

	return strings.TrimSpace(out.String()) == "true", nil
}

// UncommittedFiles lists changed and untracked files using porcelain status.
func (g *OSGitClient) UncommittedFiles(ctx context.Context, dir string, paths ...string) ([]string, error) {
	args := append([]string{"status", "--porcelain", "--untracked-files=all", "--"}, paths...)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to get status: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return parsePorcelain(out.String()), nil
}

// parsePorcelain extracts paths from `git status --porcelain` (v1) output.
// Renames report their new path.
func parsePorcelain(output string) []string {
	var files []string
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}

		path := line[3:]
		if _, to, ok := strings.Cut(path, " -> "); ok {
			path = to
		}
		files = append(files, strings.Trim(path, `"`))
	}
	return files
}

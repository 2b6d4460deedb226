package git

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
)

var _ GitClient = (*MockGitClient)(nil)

// MockGitClient implements GitClient for testing. Repositories are keyed by
// their root directory.
type MockGitClient struct {
	mu    sync.RWMutex
	repos map[string]map[string]struct{} // root -> uncommitted paths

	// Hooks for testing error scenarios
	IsGitRepoError        error
	UncommittedFilesError error
}

// NewMockGitClient creates a MockGitClient without repositories
func NewMockGitClient() *MockGitClient {
	return &MockGitClient{
		repos: make(map[string]map[string]struct{}),
	}
}

// AddRepo registers a clean repository rooted at root.
func (m *MockGitClient) AddRepo(root string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	root = filepath.Clean(root)
	if _, ok := m.repos[root]; !ok {
		m.repos[root] = make(map[string]struct{})
	}
}

// Modify marks paths (relative to root) as uncommitted, registering the
// repository if needed.
func (m *MockGitClient) Modify(root string, paths ...string) {
	m.AddRepo(root)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range paths {
		m.repos[filepath.Clean(root)][filepath.ToSlash(p)] = struct{}{}
	}
}

// IsGitRepo implements GitClient.
func (m *MockGitClient) IsGitRepo(_ context.Context, dir string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.IsGitRepoError != nil {
		return false, m.IsGitRepoError
	}

	_, ok := m.repoFor(filepath.Clean(dir))
	return ok, nil
}

// UncommittedFiles implements GitClient. Paths are matched exactly.
func (m *MockGitClient) UncommittedFiles(_ context.Context, dir string, paths ...string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.UncommittedFilesError != nil {
		return nil, m.UncommittedFilesError
	}

	dirty, ok := m.repoFor(filepath.Clean(dir))
	if !ok {
		return nil, nil
	}

	var files []string
	for p := range dirty {
		if len(paths) == 0 || slices.Contains(paths, p) {
			files = append(files, p)
		}
	}
	slices.Sort(files)

	return files, nil
}

func (m *MockGitClient) repoFor(dir string) (map[string]struct{}, bool) {
	for {
		if dirty, ok := m.repos[dir]; ok {
			return dirty, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false
		}
		dir = parent
	}
}

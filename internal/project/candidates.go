package project

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"unicode/utf8"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/feathers-electron/internal/filesystem"
)

// reservedName matches directories that are never offered as install targets.
var reservedName = regexp.MustCompile(`(?i)test|config|node_modules|^\.`)

// CandidateOption configures candidate enumeration.
type CandidateOption func(*candidateOptions)

type candidateOptions struct {
	respectGitIgnore bool
}

// WithGitIgnore additionally drops directories ignored by the root .gitignore.
func WithGitIgnore(enabled bool) CandidateOption {
	return func(o *candidateOptions) {
		o.respectGitIgnore = enabled
	}
}

// IsReserved reports whether name can never be an install target.
func IsReserved(name string) bool {
	return reservedName.MatchString(name)
}

// ListCandidates returns the immediate child directories of root that may
// receive the Electron assets. Entries are checked with Lstat, so symlinks
// to directories are not candidates.
func ListCandidates(fs filesystem.FileSystem, root string, options ...CandidateOption) ([]string, error) {
	var opts candidateOptions
	for _, option := range options {
		option(&opts)
	}

	entries, err := fs.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	var ignore gitignore.GitIgnore
	if opts.respectGitIgnore {
		ignore, err = loadRootGitIgnore(fs, root)
		if err != nil {
			return nil, err
		}
	}

	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()

		info, err := fs.Lstat(filepath.Join(root, name))
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		if !info.IsDir() {
			continue
		}

		if IsReserved(name) {
			continue
		}

		if ignore != nil {
			if match := ignore.Relative(name, true); match != nil && match.Ignore() {
				continue
			}
		}

		candidates = append(candidates, name)
	}

	SortCandidates(candidates)

	return candidates, nil
}

// SortCandidates orders names by the code point of their first character.
// Names sharing a first character keep their relative order.
func SortCandidates(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return firstRune(names[i]) < firstRune(names[j])
	})
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func loadRootGitIgnore(fs filesystem.FileSystem, root string) (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(root, ".gitignore")
	if !fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), root, nil), nil
}

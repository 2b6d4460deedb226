package entrypoint

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/jakoblorz/feathers-electron/internal/filesystem"
)

// DefaultPath is the entry point of a generated Feathers app, relative to the
// project root.
const DefaultPath = "src/index.js"

const (
	commentOpen  = "/*"
	commentClose = "*/"
)

// Neutralize makes text safe to embed inside a block comment. The first "/*"
// becomes a line comment and every "*/" is removed. This is a text transform,
// not a parser: a file with several block comments loses their closing
// delimiters and keeps the later openers verbatim, which is harmless inside
// the wrapping comment.
func Neutralize(text string) string {
	text = strings.Replace(text, commentOpen, "//", 1)
	for strings.Contains(text, commentClose) {
		text = strings.ReplaceAll(text, commentClose, "")
	}
	return text
}

// Wrap demotes original to a leading block comment and appends replacement.
func Wrap(original, replacement string) string {
	var b strings.Builder
	b.Grow(len(original) + len(replacement) + 7)
	b.WriteString("/** ")
	b.WriteString(Neutralize(original))
	b.WriteString(" */")
	b.WriteString(replacement)
	return b.String()
}

// Patch rewrites the file at path as Wrap(current contents, replacement).
func Patch(fsys filesystem.FileSystem, path string, replacement []byte) error {
	original, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	perm := fs.FileMode(0644)
	if info, err := fsys.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	content := Wrap(string(original), string(replacement))
	if err := fsys.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

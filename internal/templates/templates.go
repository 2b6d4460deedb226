// Package templates holds the Electron artifacts copied into a project.
//
// Files are embedded at build time. A file whose name ends in ".tmpl" is
// rendered with text/template and the sprig function map before it is
// written; the suffix is dropped from the destination name. Everything else
// is copied byte for byte.
package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/feathers-electron/internal/filesystem"
)

const tmplExt = ".tmpl"

// EntryTemplate is the replacement entry point appended below the old one.
const EntryTemplate = "index.js"

//go:embed all:files
var embedded embed.FS

// Asset is a template artifact copied into the selected directory.
type Asset struct {
	Name string
	Dir  bool
}

// Assets are copied into the selected directory.
var Assets = []Asset{
	{Name: "connect.js"},
	{Name: "electron.js"},
	{Name: "utils", Dir: true},
}

// Data is available to ".tmpl" files.
type Data struct {
	Directory   string
	ProjectName string
}

// Set is a source of template files.
type Set struct {
	fsys fs.FS
}

// Embedded returns the templates compiled into the binary.
func Embedded() *Set {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		panic(err)
	}
	return &Set{fsys: sub}
}

// FromDir reads templates from a directory on disk.
func FromDir(dir string) *Set {
	return &Set{fsys: os.DirFS(dir)}
}

// FromFS reads templates from fsys.
func FromFS(fsys fs.FS) *Set {
	return &Set{fsys: fsys}
}

// Render returns the contents of the named template file. If name does not
// exist but name+".tmpl" does, the template is rendered with data.
func (s *Set) Render(name string, data Data) ([]byte, error) {
	src, isTmpl, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	raw, err := fs.ReadFile(s.fsys, src)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", src, err)
	}

	if !isTmpl {
		return raw, nil
	}

	return execute(src, raw, data)
}

// Copy writes asset into destDir and returns the written paths. Directories
// are copied recursively with their structure preserved.
func (s *Set) Copy(fsys filesystem.FileSystem, asset Asset, destDir string, data Data) ([]string, error) {
	if !asset.Dir {
		dest := filepath.Join(destDir, asset.Name)
		if err := s.copyFile(fsys, asset.Name, dest, data); err != nil {
			return nil, err
		}
		return []string{dest}, nil
	}

	info, err := fs.Stat(s.fsys, asset.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to find template %s: %w", asset.Name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template %s is not a directory", asset.Name)
	}

	var written []string
	err = fs.WalkDir(s.fsys, asset.Name, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		dest := filepath.Join(destDir, filepath.FromSlash(strings.TrimSuffix(p, tmplExt)))
		if entry.IsDir() {
			if err := fsys.MkdirAll(dest, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dest, err)
			}
			return nil
		}

		if err := s.copyFile(fsys, strings.TrimSuffix(p, tmplExt), dest, data); err != nil {
			return err
		}
		written = append(written, dest)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return written, nil
}

func (s *Set) copyFile(fsys filesystem.FileSystem, name, dest string, data Data) error {
	content, err := s.Render(name, data)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}

	if err := fsys.WriteFile(dest, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	return nil
}

func (s *Set) lookup(name string) (string, bool, error) {
	name = path.Clean(filepath.ToSlash(name))

	_, err := fs.Stat(s.fsys, name)
	if err == nil {
		return name, strings.HasSuffix(name, tmplExt), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("failed to find template %s: %w", name, err)
	}

	if _, tmplErr := fs.Stat(s.fsys, name+tmplExt); tmplErr == nil {
		return name + tmplExt, true, nil
	}

	return "", false, fmt.Errorf("failed to find template %s: %w", name, err)
}

func execute(name string, raw []byte, data Data) ([]byte, error) {
	tmpl, err := template.New(path.Base(name)).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

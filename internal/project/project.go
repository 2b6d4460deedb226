package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/feathers-electron/internal/filesystem"
)

// ManifestFile is the name of the project manifest.
const ManifestFile = "package.json"

// ErrManifestNotFound is returned when no package.json exists at or above the
// starting directory.
var ErrManifestNotFound = errors.New("package.json not found")

// Project is a generated project that can receive the Electron integration.
type Project struct {
	fs       filesystem.FileSystem
	RootPath string
	Name     string
}

// Detect walks up from the current working directory looking for package.json.
func Detect(fs filesystem.FileSystem) (*Project, error) {
	cwd, err := fs.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	dir := cwd
	for {
		if fs.Exists(filepath.Join(dir, ManifestFile)) {
			return Open(fs, dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("%w in %s or any parent directory", ErrManifestNotFound, cwd)
		}
		dir = parent
	}
}

// Open loads the project rooted at root. The root must contain package.json.
func Open(fs filesystem.FileSystem, root string) (*Project, error) {
	root = filepath.Clean(root)

	manifestPath := filepath.Join(root, ManifestFile)
	if !fs.Exists(manifestPath) {
		return nil, fmt.Errorf("%w in %s", ErrManifestNotFound, root)
	}

	pkg, err := readPackageJSON(fs, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	name := pkg.Name
	if strings.TrimSpace(name) == "" {
		name = filepath.Base(root)
	}

	return &Project{
		fs:       fs,
		RootPath: root,
		Name:     name,
	}, nil
}

// ManifestPath returns the absolute path of package.json.
func (p *Project) ManifestPath() string {
	return filepath.Join(p.RootPath, ManifestFile)
}

// Path joins elem onto the project root.
func (p *Project) Path(elem ...string) string {
	return filepath.Join(append([]string{p.RootPath}, elem...)...)
}

// packageJSON represents the subset of package.json needed to name a project.
type packageJSON struct {
	Name string `json:"name"`
}

func readPackageJSON(fs filesystem.FileSystem, path string) (packageJSON, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return packageJSON{}, err
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return packageJSON{}, err
	}

	return pkg, nil
}

package npm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jakoblorz/feathers-electron/internal/filesystem"
)

// Manager is a supported package manager.
type Manager string

const (
	NPM  Manager = "npm"
	Yarn Manager = "yarn"
	PNPM Manager = "pnpm"
)

// ErrUnknownManager is returned for a package manager name that is not supported.
var ErrUnknownManager = errors.New("unknown package manager")

// ParseManager validates a package manager name.
func ParseManager(name string) (Manager, error) {
	switch m := Manager(strings.ToLower(strings.TrimSpace(name))); m {
	case NPM, Yarn, PNPM:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (expected npm, yarn or pnpm)", ErrUnknownManager, name)
	}
}

// DetectManager picks the package manager from the lock file in root.
// npm is the fallback.
func DetectManager(fs filesystem.FileSystem, root string) Manager {
	switch {
	case fs.Exists(filepath.Join(root, "pnpm-lock.yaml")):
		return PNPM
	case fs.Exists(filepath.Join(root, "yarn.lock")):
		return Yarn
	default:
		return NPM
	}
}

// Args returns the command line that installs packages as kind.
func (m Manager) Args(kind DependencyKind, packages []string) []string {
	var args []string
	switch m {
	case Yarn:
		args = []string{"add"}
		if kind == Dev {
			args = append(args, "--dev")
		}
	case PNPM:
		args = []string{"add"}
		if kind == Dev {
			args = append(args, "--save-dev")
		}
	default:
		args = []string{"install"}
		if kind == Dev {
			args = append(args, "--save-dev")
		} else {
			args = append(args, "--save")
		}
	}
	return append(args, packages...)
}

// OSInstaller implements Installer by running the package manager binary.
type OSInstaller struct {
	manager Manager
	dir     string
	stdout  io.Writer
}

// NewOSInstaller creates an installer that runs manager in dir.
func NewOSInstaller(manager Manager, dir string) *OSInstaller {
	return &OSInstaller{
		manager: manager,
		dir:     dir,
		stdout:  io.Discard,
	}
}

// WithOutput returns a copy of the installer that streams the package
// manager's stdout to w.
func (i *OSInstaller) WithOutput(w io.Writer) *OSInstaller {
	return &OSInstaller{
		manager: i.manager,
		dir:     i.dir,
		stdout:  w,
	}
}

// Manager returns the package manager this installer runs.
func (i *OSInstaller) Manager() Manager {
	return i.manager
}

// Install runs the package manager. The process is killed when ctx is done.
func (i *OSInstaller) Install(ctx context.Context, kind DependencyKind, packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	bin, err := exec.LookPath(string(i.manager))
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", i.manager, err)
	}

	cmd := exec.CommandContext(ctx, bin, i.manager.Args(kind, packages)...)
	cmd.Dir = i.dir
	cmd.Stdout = i.stdout

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to install %s dependencies (%s): %w: %s",
			kind, strings.Join(packages, ", "), err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// DetectingInstaller runs whichever package manager DetectManager picks for
// dir. The lock file is inspected on the first Install, so a lock file
// written by the base generator is honoured.
type DetectingInstaller struct {
	fs     filesystem.FileSystem
	dir    string
	stdout io.Writer

	once sync.Once
	inst *OSInstaller
}

// NewDetectingInstaller creates a DetectingInstaller that streams the package
// manager's stdout to stdout. A nil stdout discards it.
func NewDetectingInstaller(fs filesystem.FileSystem, dir string, stdout io.Writer) *DetectingInstaller {
	if stdout == nil {
		stdout = io.Discard
	}
	return &DetectingInstaller{fs: fs, dir: dir, stdout: stdout}
}

// Manager returns the detected package manager.
func (d *DetectingInstaller) Manager() Manager {
	return d.installer().Manager()
}

// Install implements Installer.
func (d *DetectingInstaller) Install(ctx context.Context, kind DependencyKind, packages []string) error {
	return d.installer().Install(ctx, kind, packages)
}

func (d *DetectingInstaller) installer() *OSInstaller {
	d.once.Do(func() {
		d.inst = NewOSInstaller(DetectManager(d.fs, d.dir), d.dir).WithOutput(d.stdout)
	})
	return d.inst
}

// Package scaffold layers Electron desktop packaging onto a generated project.
//
// A run is a fixed chain: compose the base generator, confirm, pick a target
// directory, copy the Electron assets, patch package.json, patch the entry
// point and install dependencies. The copies and the two installs are each
// run concurrently; the first error in a group aborts the run. Nothing that
// was already written is rolled back.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/jakoblorz/feathers-electron/internal/entrypoint"
	"github.com/jakoblorz/feathers-electron/internal/filesystem"
	"github.com/jakoblorz/feathers-electron/internal/generator"
	"github.com/jakoblorz/feathers-electron/internal/manifest"
	"github.com/jakoblorz/feathers-electron/internal/npm"
	"github.com/jakoblorz/feathers-electron/internal/project"
	"github.com/jakoblorz/feathers-electron/internal/templates"
	"github.com/jakoblorz/feathers-electron/internal/tui"
	"golang.org/x/sync/errgroup"
)

const (
	ConfirmMessage   = "Would you like to use Electron?"
	DirectoryMessage = "Where should we install Electron?"
)

var (
	// ErrNoCandidates is returned when the project has no directory that can
	// receive the Electron assets.
	ErrNoCandidates = errors.New("no directory can receive the Electron assets")

	// ErrInvalidDirectory is returned when a preselected directory is not a candidate.
	ErrInvalidDirectory = errors.New("directory cannot receive the Electron assets")
)

// Options tune a run. The zero value prompts for everything.
type Options struct {
	// Yes answers the confirmation prompt.
	Yes bool
	// Directory answers the directory prompt; it must still be a candidate.
	Directory string
	// EntryPoint is relative to the project root. Defaults to src/index.js.
	EntryPoint string
	// SkipInstall leaves dependencies untouched.
	SkipInstall bool
	// RespectGitIgnore drops candidates ignored by the root .gitignore.
	RespectGitIgnore bool
	// Templates overrides the embedded template set.
	Templates *templates.Set
	// Reporter receives step progress. May be nil.
	Reporter *tui.Reporter
}

// Result describes a finished run.
type Result struct {
	Skipped   bool
	Directory string
	Copied    []string
	Scripts   []manifest.Script
	Installed map[npm.DependencyKind][]string
}

// Scaffolder runs the Electron integration against a project.
type Scaffolder struct {
	fs        filesystem.FileSystem
	base      generator.Base
	prompter  tui.Prompter
	installer npm.Installer
	opts      Options
}

// New constructs a Scaffolder.
func New(fs filesystem.FileSystem, base generator.Base, prompter tui.Prompter, installer npm.Installer, opts Options) *Scaffolder {
	if base == nil {
		base = generator.Noop{}
	}
	if opts.Templates == nil {
		opts.Templates = templates.Embedded()
	}
	if opts.EntryPoint == "" {
		opts.EntryPoint = entrypoint.DefaultPath
	}

	return &Scaffolder{
		fs:        fs,
		base:      base,
		prompter:  prompter,
		installer: installer,
		opts:      opts,
	}
}

// Run executes the scaffolding chain in root. A declined confirmation returns
// a skipped result and a nil error.
func (s *Scaffolder) Run(ctx context.Context, root string) (*Result, error) {
	report := s.opts.Reporter

	report.Step("Running base generator")
	if err := s.base.Initialize(ctx); err != nil {
		return nil, err
	}

	confirmed, err := s.confirm(ctx)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return &Result{Skipped: true}, nil
	}

	proj, err := project.Open(s.fs, root)
	if err != nil {
		return nil, err
	}

	candidates, err := project.ListCandidates(s.fs, proj.RootPath, project.WithGitIgnore(s.opts.RespectGitIgnore))
	if err != nil {
		return nil, err
	}

	directory, err := s.selectDirectory(ctx, candidates)
	if err != nil {
		return nil, err
	}

	result := &Result{Directory: directory}
	data := templates.Data{Directory: directory, ProjectName: proj.Name}

	report.Step("Copying Electron assets into %s", directory)
	result.Copied, err = s.copyAssets(ctx, proj.Path(directory), data)
	if err != nil {
		return nil, err
	}
	for _, path := range result.Copied {
		report.Detail("%s", relative(proj.RootPath, path))
	}

	report.Step("Injecting Electron scripts into %s", project.ManifestFile)
	result.Scripts, err = manifest.Patch(s.fs, proj.ManifestPath())
	if err != nil {
		return nil, err
	}

	report.Step("Rewriting %s", s.opts.EntryPoint)
	if err := s.patchEntryPoint(proj, data); err != nil {
		return nil, err
	}

	if s.opts.SkipInstall {
		report.Step("Skipping dependency installation")
		return result, nil
	}

	report.Step("Installing dependencies")
	result.Installed, err = s.install(ctx)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Scaffolder) confirm(ctx context.Context) (bool, error) {
	if s.opts.Yes {
		return true, nil
	}
	return s.prompter.Confirm(ctx, ConfirmMessage)
}

// selectDirectory takes the enumerated candidates by value; they are not
// kept after a directory is chosen.
func (s *Scaffolder) selectDirectory(ctx context.Context, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	if s.opts.Directory != "" {
		want := strings.Trim(filepath.ToSlash(s.opts.Directory), "/")
		if !slices.Contains(candidates, want) {
			return "", fmt.Errorf("%w: %q (candidates: %s)", ErrInvalidDirectory, s.opts.Directory, strings.Join(candidates, ", "))
		}
		return want, nil
	}

	return s.prompter.Select(ctx, DirectoryMessage, candidates)
}

// copyAssets copies every asset concurrently. A failed copy does not stop
// the others; the first error is returned once all have settled.
func (s *Scaffolder) copyAssets(ctx context.Context, dest string, data templates.Data) ([]string, error) {
	var g errgroup.Group

	written := make([][]string, len(templates.Assets))
	for i, asset := range templates.Assets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			paths, err := s.opts.Templates.Copy(s.fs, asset, dest, data)
			if err != nil {
				return fmt.Errorf("failed to copy %s: %w", asset.Name, err)
			}
			written[i] = paths
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var copied []string
	for _, paths := range written {
		copied = append(copied, paths...)
	}
	return copied, nil
}

func (s *Scaffolder) patchEntryPoint(proj *project.Project, data templates.Data) error {
	replacement, err := s.opts.Templates.Render(templates.EntryTemplate, data)
	if err != nil {
		return err
	}

	return entrypoint.Patch(s.fs, proj.Path(filepath.FromSlash(s.opts.EntryPoint)), replacement)
}

func (s *Scaffolder) install(ctx context.Context) (map[npm.DependencyKind][]string, error) {
	groups := []struct {
		kind     npm.DependencyKind
		packages []string
	}{
		{npm.Dev, npm.DevDependencies},
		{npm.Runtime, npm.RuntimeDependencies},
	}

	var mu sync.Mutex
	installed := make(map[npm.DependencyKind][]string, len(groups))

	// Only the caller's context cancels an install; a failed sibling does not.
	var g errgroup.Group
	for _, group := range groups {
		g.Go(func() error {
			if err := s.installer.Install(ctx, group.kind, group.packages); err != nil {
				return err
			}

			mu.Lock()
			installed[group.kind] = group.packages
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return installed, nil
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

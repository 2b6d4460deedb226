package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/feathers-electron/internal/filesystem"
	"github.com/jakoblorz/feathers-electron/internal/generator"
	"github.com/jakoblorz/feathers-electron/internal/git"
	"github.com/jakoblorz/feathers-electron/internal/npm"
	"github.com/jakoblorz/feathers-electron/internal/project"
	"github.com/jakoblorz/feathers-electron/internal/scaffold"
	"github.com/jakoblorz/feathers-electron/internal/templates"
	"github.com/jakoblorz/feathers-electron/internal/tui"
	"github.com/spf13/cobra"
)

// ErrUncommittedChanges is returned when files the add command rewrites have
// uncommitted changes and --force is not set.
var ErrUncommittedChanges = errors.New("uncommitted changes")

// AddCommand handles the add command
type AddCommand struct {
	fs        filesystem.FileSystem
	git       git.GitClient
	prompter  tui.Prompter
	base      generator.Base
	installer npm.Installer
}

// NewAddCommand creates a new add command
func NewAddCommand(fs filesystem.FileSystem, gitClient git.GitClient, prompter tui.Prompter, base generator.Base, installer npm.Installer) *cobra.Command {
	cmd := &AddCommand{
		fs:        fs,
		git:       gitClient,
		prompter:  prompter,
		base:      base,
		installer: installer,
	}

	cobraCmd := &cobra.Command{
		Use:   "add",
		Short: "Add Electron to a Feathers application",
		Long:  `Runs the base generator, asks where Electron should live and wires it into the project.`,
		Example: `  # Interactive
  feathers-electron add

  # Unattended, into src/, without running yo
  feathers-electron add --yes --directory src --skip-base`,
		RunE: cmd.Run,
	}
	registerAddFlags(cobraCmd)

	return cobraCmd
}

// Run executes the add command
func (c *AddCommand) Run(cmd *cobra.Command, args []string) error {
	opts, err := readAddOptions(cmd)
	if err != nil {
		return err
	}

	root, err := c.resolveRoot(opts.projectDir)
	if err != nil {
		return err
	}

	if !opts.force {
		if err := c.checkClean(cmd.Context(), root, opts.entry); err != nil {
			return err
		}
	}

	base, err := c.baseFor(cmd, opts, root)
	if err != nil {
		return err
	}

	var set *templates.Set
	if opts.templatesDir != "" {
		set = templates.FromDir(opts.templatesDir)
	}

	s := scaffold.New(c.fs, base, c.prompterFor(opts), c.installerFor(cmd, opts, root), scaffold.Options{
		Yes:              opts.yes,
		Directory:        opts.directory,
		EntryPoint:       opts.entry,
		SkipInstall:      opts.skipInstall,
		RespectGitIgnore: opts.respectGitIgnore,
		Templates:        set,
		Reporter:         tui.NewReporter(cmd.OutOrStdout(), opts.quiet),
	})

	result, err := s.Run(cmd.Context(), root)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(summaryOf(result, root)))

	return nil
}

// resolveRoot picks the project root: the flag, else the nearest directory
// holding a package.json, else the working directory the base generator
// will populate.
func (c *AddCommand) resolveRoot(projectDir string) (string, error) {
	cwd, err := c.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if projectDir != "" {
		if !filepath.IsAbs(projectDir) {
			projectDir = filepath.Join(cwd, projectDir)
		}
		return filepath.Clean(projectDir), nil
	}

	proj, err := project.Detect(c.fs)
	if errors.Is(err, project.ErrManifestNotFound) {
		return cwd, nil
	}
	if err != nil {
		return "", err
	}

	return proj.RootPath, nil
}

// checkClean refuses to run when the files that get rewritten in place have
// uncommitted changes. A root that does not exist yet, or is outside a git
// work tree, passes.
func (c *AddCommand) checkClean(ctx context.Context, root, entry string) error {
	if c.git == nil || !c.fs.Exists(root) {
		return nil
	}

	repo, err := c.git.IsGitRepo(ctx, root)
	if err != nil || !repo {
		return err
	}

	dirty, err := c.git.UncommittedFiles(ctx, root, project.ManifestFile, filepath.ToSlash(entry))
	if err != nil {
		return err
	}
	if len(dirty) > 0 {
		return fmt.Errorf("%w in %s (commit or stash them, or pass --%s)", ErrUncommittedChanges, strings.Join(dirty, ", "), flagForce)
	}

	return nil
}

func (c *AddCommand) baseFor(cmd *cobra.Command, opts addOptions, root string) (generator.Base, error) {
	if opts.skipBase {
		return generator.Noop{}, nil
	}
	if c.base != nil {
		return c.base, nil
	}

	args, err := generator.ParseCommand(opts.baseGenerator)
	if err != nil {
		return nil, err
	}

	if err := c.fs.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", root, err)
	}

	return &generator.Command{
		Args:   args,
		Dir:    root,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}, nil
}

func (c *AddCommand) prompterFor(opts addOptions) tui.Prompter {
	if c.prompter != nil {
		return c.prompter
	}
	return tui.NewHuhPrompter(
		tui.WithAccessible(opts.accessible),
		tui.WithAltScreen(opts.altScreen),
	)
}

func (c *AddCommand) installerFor(cmd *cobra.Command, opts addOptions, root string) npm.Installer {
	if c.installer != nil {
		return c.installer
	}

	var out io.Writer = io.Discard
	if opts.verbose {
		out = cmd.ErrOrStderr()
	}

	if opts.packageManager != "" {
		return npm.NewOSInstaller(opts.packageManager, root).WithOutput(out)
	}
	return npm.NewDetectingInstaller(c.fs, root, out)
}

func summaryOf(result *scaffold.Result, root string) tui.Summary {
	summary := tui.Summary{
		Skipped:   result.Skipped,
		Directory: result.Directory,
		Scripts:   len(result.Scripts),
	}

	for _, path := range result.Copied {
		if rel, err := filepath.Rel(root, path); err == nil {
			path = filepath.ToSlash(rel)
		}
		summary.Copied = append(summary.Copied, path)
	}

	if len(result.Installed) > 0 {
		summary.Installed = make(map[string][]string, len(result.Installed))
		for kind, packages := range result.Installed {
			summary.Installed[string(kind)] = packages
		}
	}

	return summary
}

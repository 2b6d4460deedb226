package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jakoblorz/feathers-electron/internal/filesystem"
	"github.com/jakoblorz/feathers-electron/internal/manifest"
	"github.com/jakoblorz/feathers-electron/internal/project"
	"github.com/jakoblorz/feathers-electron/internal/tui"
	"github.com/spf13/cobra"
)

// ScriptsCommand previews the package.json scripts an add would write.
type ScriptsCommand struct {
	fs filesystem.FileSystem
}

// NewScriptsCommand creates a new scripts command
func NewScriptsCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ScriptsCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "scripts",
		Short: "Preview the Electron scripts for package.json",
		Long: `Shows how the package.json scripts would change, without writing anything.

  + added    ~ changed    - removed`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP(flagProjectDir, "C", "", "Project root (default: nearest directory with a package.json)")
	cobraCmd.Flags().Bool("json", false, "Print the patched package.json instead")

	return cobraCmd
}

// Run executes the scripts command
func (c *ScriptsCommand) Run(cmd *cobra.Command, args []string) error {
	projectDir, _ := cmd.Flags().GetString(flagProjectDir)
	asJSON, _ := cmd.Flags().GetBool("json")

	proj, err := c.openProject(projectDir)
	if err != nil {
		return err
	}

	data, err := c.fs.ReadFile(proj.ManifestPath())
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", proj.ManifestPath(), err)
	}

	existing, err := manifest.ReadScripts(data)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", proj.ManifestPath(), err)
	}

	patched, merged, err := manifest.Apply(data)
	if err != nil {
		return fmt.Errorf("failed to patch %s: %w", proj.ManifestPath(), err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		_, err := out.Write(patched)
		return err
	}

	_, _ = fmt.Fprintln(out, tui.TitleStyle.Render("Scripts for "+proj.ManifestPath()))
	printScriptChanges(out, existing, merged)

	return nil
}

func (c *ScriptsCommand) openProject(projectDir string) (*project.Project, error) {
	if projectDir == "" {
		return project.Detect(c.fs)
	}

	if !filepath.IsAbs(projectDir) {
		cwd, err := c.fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		projectDir = filepath.Join(cwd, projectDir)
	}

	return project.Open(c.fs, projectDir)
}

func printScriptChanges(out io.Writer, existing, merged []manifest.Script) {
	width := 0
	for _, s := range append(append([]manifest.Script(nil), existing...), merged...) {
		width = max(width, len(s.Name))
	}

	for _, s := range merged {
		before, had := manifest.Lookup(existing, s.Name)
		switch {
		case !had:
			_, _ = fmt.Fprintf(out, "%s %-*s  %s\n", tui.SuccessStyle.Render("+"), width, s.Name, s.Command)
		case before != s.Command:
			_, _ = fmt.Fprintf(out, "%s %-*s  %s\n", tui.SelectedStyle.Render("~"), width, s.Name, s.Command)
		default:
			_, _ = fmt.Fprintf(out, "  %-*s  %s\n", width, s.Name, tui.SubtleStyle.Render(s.Command))
		}
	}

	for _, s := range existing {
		if _, kept := manifest.Lookup(merged, s.Name); !kept {
			_, _ = fmt.Fprintf(out, "%s %s\n", tui.ErrorStyle.Render("-"), s.Name)
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jakoblorz/feathers-electron/internal/filesystem"
	"github.com/jakoblorz/feathers-electron/internal/generator"
	"github.com/jakoblorz/feathers-electron/internal/git"
	"github.com/jakoblorz/feathers-electron/internal/npm"
	"github.com/jakoblorz/feathers-electron/internal/tui"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command. Nil collaborators are built from
// the command's flags at run time.
func NewRootCommand(fs filesystem.FileSystem, gitClient git.GitClient, prompter tui.Prompter, base generator.Base, installer npm.Installer) *cobra.Command {
	add := &AddCommand{
		fs:        fs,
		git:       gitClient,
		prompter:  prompter,
		base:      base,
		installer: installer,
	}

	rootCmd := &cobra.Command{
		Use:   "feathers-electron",
		Short: "Add Electron desktop packaging to a Feathers application",
		Long: `Runs the Feathers application generator, then layers an Electron desktop
shell on top of the generated project.

The Electron entry files are copied into a directory you pick, package.json
gets the Electron build and packaging scripts, the old server entry point is
commented out ahead of the new one, and the Electron toolchain is installed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `feathers-electron add` when no subcommand is provided.
			return add.Run(cmd, args)
		},
	}
	registerAddFlags(rootCmd)

	rootCmd.AddCommand(NewAddCommand(fs, gitClient, prompter, base, installer))
	rootCmd.AddCommand(NewScriptsCommand(fs))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command. An interrupt cancels the run, which kills
// any generator or package manager process still running.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := filesystem.NewOSFileSystem()
	gitClient := git.NewOSGitClient()

	rootCmd := NewRootCommand(fs, gitClient, nil, nil, nil)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

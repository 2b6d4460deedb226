package cli

import (
	"os"
	"strings"

	"github.com/jakoblorz/feathers-electron/internal/entrypoint"
	"github.com/jakoblorz/feathers-electron/internal/generator"
	"github.com/jakoblorz/feathers-electron/internal/npm"
	"github.com/spf13/cobra"
)

const (
	flagYes              = "yes"
	flagDirectory        = "directory"
	flagProjectDir       = "project-dir"
	flagSkipInstall      = "skip-install"
	flagSkipBase         = "skip-base"
	flagBaseGenerator    = "base-generator"
	flagPackageManager   = "package-manager"
	flagTemplates        = "templates"
	flagEntry            = "entry"
	flagRespectGitIgnore = "respect-gitignore"
	flagQuiet            = "quiet"
	flagVerbose          = "verbose"
	flagAccessible       = "accessible"
	flagAltScreen        = "alt-screen"
	flagForce            = "force"

	// packageManagerEnv selects the package manager when the flag is unset.
	packageManagerEnv = "FEATHERS_ELECTRON_PACKAGE_MANAGER"
)

type addOptions struct {
	yes              bool
	directory        string
	projectDir       string
	skipInstall      bool
	skipBase         bool
	baseGenerator    string
	packageManager   npm.Manager
	templatesDir     string
	entry            string
	respectGitIgnore bool
	quiet            bool
	verbose          bool
	accessible       bool
	altScreen        bool
	force            bool
}

func registerAddFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolP(flagYes, "y", false, "Add Electron without asking")
	flags.StringP(flagDirectory, "d", "", "Directory to install Electron into (skips the selection prompt)")
	flags.StringP(flagProjectDir, "C", "", "Project root (default: nearest directory with a package.json, or the working directory)")
	flags.Bool(flagSkipInstall, false, "Do not install the Electron dependencies")
	flags.Bool(flagSkipBase, false, "Do not run the base generator")
	flags.String(flagBaseGenerator, strings.Join(generator.DefaultCommand, " "), "Base generator command")
	flags.String(flagPackageManager, "", "Package manager: npm, yarn or pnpm (default: $"+packageManagerEnv+", else detected from the lock file)")
	flags.String(flagTemplates, "", "Read templates from this directory instead of the built-in set")
	flags.String(flagEntry, entrypoint.DefaultPath, "Server entry point to replace, relative to the project root")
	flags.Bool(flagRespectGitIgnore, false, "Hide directories ignored by the root .gitignore")
	flags.BoolP(flagQuiet, "q", false, "Only print the summary")
	flags.BoolP(flagVerbose, "v", false, "Stream package manager output")
	flags.Bool(flagAccessible, false, "Use plain line-based prompts")
	flags.Bool(flagAltScreen, false, "Render prompts on the alternate screen")
	flags.BoolP(flagForce, "f", false, "Rewrite package.json and the entry point even if they have uncommitted changes")
}

func readAddOptions(cmd *cobra.Command) (addOptions, error) {
	flags := cmd.Flags()

	var opts addOptions
	opts.yes, _ = flags.GetBool(flagYes)
	opts.directory, _ = flags.GetString(flagDirectory)
	opts.projectDir, _ = flags.GetString(flagProjectDir)
	opts.skipInstall, _ = flags.GetBool(flagSkipInstall)
	opts.skipBase, _ = flags.GetBool(flagSkipBase)
	opts.baseGenerator, _ = flags.GetString(flagBaseGenerator)
	opts.templatesDir, _ = flags.GetString(flagTemplates)
	opts.entry, _ = flags.GetString(flagEntry)
	opts.respectGitIgnore, _ = flags.GetBool(flagRespectGitIgnore)
	opts.quiet, _ = flags.GetBool(flagQuiet)
	opts.verbose, _ = flags.GetBool(flagVerbose)
	opts.accessible, _ = flags.GetBool(flagAccessible)
	opts.altScreen, _ = flags.GetBool(flagAltScreen)
	opts.force, _ = flags.GetBool(flagForce)

	manager, _ := flags.GetString(flagPackageManager)
	if manager == "" {
		manager = os.Getenv(packageManagerEnv)
	}
	if manager != "" {
		parsed, err := npm.ParseManager(manager)
		if err != nil {
			return addOptions{}, err
		}
		opts.packageManager = parsed
	}

	return opts, nil
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jakoblorz/feathers-electron/internal/filesystem"
	"github.com/jakoblorz/feathers-electron/internal/generator"
	"github.com/jakoblorz/feathers-electron/internal/git"
	"github.com/jakoblorz/feathers-electron/internal/manifest"
	"github.com/jakoblorz/feathers-electron/internal/npm"
	"github.com/jakoblorz/feathers-electron/internal/scaffold"
	"github.com/jakoblorz/feathers-electron/internal/tui"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testPackageJSON = `{
  "name": "chat",
  "scripts": {
    "start": "node src/",
    "eslint": "eslint src/.",
    "mocha": "mocha test/",
    "dev": "nodemon src/"
  }
}
`

type harness struct {
	fs        *filesystem.MockFileSystem
	git       *git.MockGitClient
	prompter  *tui.MockPrompter
	base      *generator.MockBase
	installer *npm.MockInstaller
	out       bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(packageManagerEnv, "")

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/chat/package.json", []byte(testPackageJSON))
	fs.AddFile("/workspace/chat/src/index.js", []byte("module.exports = require('./app');\n"))
	fs.AddDir("/workspace/chat/lib")
	fs.AddDir("/workspace/chat/test")
	fs.SetCurrentDir("/workspace/chat/src")

	return &harness{
		fs:        fs,
		git:       git.NewMockGitClient(),
		prompter:  tui.NewMockPrompter(true, "src"),
		base:      generator.NewMockBase(),
		installer: npm.NewMockInstaller(),
	}
}

func (h *harness) execute(args ...string) error {
	cmd := NewRootCommand(h.fs, h.git, h.prompter, h.base, h.installer)
	cmd.SetArgs(args)
	cmd.SetOut(&h.out)
	cmd.SetErr(&h.out)
	return cmd.Execute()
}

func (h *harness) scripts(t *testing.T) []manifest.Script {
	t.Helper()
	data, err := h.fs.ReadFile("/workspace/chat/package.json")
	require.NoError(t, err)
	scripts, err := manifest.ReadScripts(data)
	require.NoError(t, err)
	return scripts
}

func TestRoot_RunsAddByDefault(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.execute())

	require.Equal(t, 1, h.base.Calls())
	require.Len(t, h.prompter.Prompts(), 2)
	require.Equal(t, []string{"lib", "src"}, h.prompter.Prompts()[1].Choices)
	require.True(t, h.fs.Exists("/workspace/chat/src/electron.js"))
	require.Len(t, h.installer.Calls(), 2)

	out := h.out.String()
	require.Contains(t, out, "Electron added")
	require.Contains(t, out, "src/connect.js")
	require.Contains(t, out, "Installed dev dependencies: "+strings.Join(npm.DevDependencies, ", "))

	_, hasDev := manifest.Lookup(h.scripts(t), "dev")
	require.True(t, hasDev)
}

func TestAdd_Unattended(t *testing.T) {
	h := newHarness(t)

	err := h.execute("add", "--yes", "--directory", "lib", "--skip-install", "--skip-base", "--quiet")
	require.NoError(t, err)

	require.Empty(t, h.prompter.Prompts())
	require.Zero(t, h.base.Calls())
	require.Empty(t, h.installer.Calls())
	require.True(t, h.fs.Exists("/workspace/chat/lib/utils/env.js"))
	require.NotContains(t, h.out.String(), "Copying")
	require.Contains(t, h.out.String(), "lib/connect.js")
}

func TestAdd_Declined(t *testing.T) {
	h := newHarness(t)
	h.prompter.ConfirmAnswer = false

	require.NoError(t, h.execute("add"))
	require.Contains(t, h.out.String(), "Skipped Electron installation")
	require.False(t, h.fs.Exists("/workspace/chat/src/electron.js"))
}

func TestAdd_ProjectDirFlag(t *testing.T) {
	h := newHarness(t)
	h.fs.SetCurrentDir("/workspace")

	require.NoError(t, h.execute("-C", "chat", "--yes", "--directory", "src", "--skip-install"))
	require.True(t, h.fs.Exists("/workspace/chat/src/connect.js"))
}

func TestAdd_InvalidDirectory(t *testing.T) {
	h := newHarness(t)

	err := h.execute("--yes", "--directory", "test")
	require.ErrorIs(t, err, scaffold.ErrInvalidDirectory)
}

func TestAdd_UncommittedChanges(t *testing.T) {
	h := newHarness(t)
	h.git.Modify("/workspace/chat", "package.json", "README.md")

	err := h.execute("--yes", "--directory", "src")
	require.ErrorIs(t, err, ErrUncommittedChanges)
	require.Contains(t, err.Error(), "package.json")
	require.NotContains(t, err.Error(), "README.md")
	require.Zero(t, h.base.Calls())
	require.False(t, h.fs.Exists("/workspace/chat/src/electron.js"))

	require.NoError(t, h.execute("--yes", "--directory", "src", "--force", "--skip-install"))
	require.True(t, h.fs.Exists("/workspace/chat/src/electron.js"))
}

func TestAdd_CleanRepository(t *testing.T) {
	h := newHarness(t)
	h.git.Modify("/workspace/chat", "README.md")

	require.NoError(t, h.execute("--yes", "--directory", "src", "--skip-install"))
}

func TestAdd_PackageManager(t *testing.T) {
	t.Run("unknown flag value", func(t *testing.T) {
		h := newHarness(t)
		err := h.execute("--package-manager", "bun")
		require.ErrorIs(t, err, npm.ErrUnknownManager)
		require.Zero(t, h.base.Calls())
	})

	t.Run("unknown env value", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv(packageManagerEnv, "bun")
		require.ErrorIs(t, h.execute(), npm.ErrUnknownManager)
	})

	t.Run("flag wins over env", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv(packageManagerEnv, "bun")
		require.NoError(t, h.execute("--package-manager", "yarn", "--skip-install"))
	})
}

func TestReadAddOptions_PackageManagerFromEnv(t *testing.T) {
	t.Setenv(packageManagerEnv, "PNPM")

	cmd := &cobra.Command{}
	registerAddFlags(cmd)

	opts, err := readAddOptions(cmd)
	require.NoError(t, err)
	require.Equal(t, npm.PNPM, opts.packageManager)
	require.Equal(t, "yo feathers", opts.baseGenerator)
	require.Equal(t, "src/index.js", opts.entry)
}

func TestScripts_Preview(t *testing.T) {
	h := newHarness(t)
	before, err := h.fs.ReadFile("/workspace/chat/package.json")
	require.NoError(t, err)

	require.NoError(t, h.execute("scripts"))

	out := h.out.String()
	require.Contains(t, out, "electron ./src/electron")
	require.Contains(t, out, "build:platform:linux")
	require.Contains(t, out, "eslint")

	after, err := h.fs.ReadFile("/workspace/chat/package.json")
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestScripts_JSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.execute("scripts", "--json", "-C", "/workspace/chat"))

	scripts, err := manifest.ReadScripts(h.out.Bytes())
	require.NoError(t, err)
	_, hasMocha := manifest.Lookup(scripts, "mocha")
	require.False(t, hasMocha)
	require.True(t, strings.HasSuffix(h.out.String(), "}\n"))
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	Version = "v1.2.3"
	t.Cleanup(func() { Version = "" })

	require.NoError(t, h.execute("version"))
	require.Equal(t, "feathers-electron v1.2.3\n", h.out.String())
}

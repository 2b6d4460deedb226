package manifest

// Script is a single package.json script entry.
type Script struct {
	Name    string
	Command string

	// Raw is the JSON text of a command that is not a string.
	Raw string
}

// ElectronScripts are injected into package.json, in this order.
var ElectronScripts = []Script{
	{Name: "test", Command: "npm run check:lint && npm run check:mocha"},
	{Name: "check:lint", Command: "eslint src/. test/."},
	{Name: "check:mocha", Command: "cross-env BABEL_DISABLE_CACHE=1 NODE_PATH=./src node ./node_modules/mocha/bin/mocha --compilers js:babel-core/register test/ --recursive"},
	{Name: "build", Command: `cross-env NODE_ENV=production concurrently "npm run build:webpack"`},
	{Name: "build:webpack", Command: "cross-env BABEL_ENV=webpack node ./node_modules/webpack/bin/webpack --config webpack.default.config.js --profile --colors"},
	{Name: "build:webpack:verbose", Command: "npm run build:webpack -- --progress"},
	{Name: "prebuild:platform", Command: "node ./node_modules/rimraf/bin ./out"},
	{Name: "build:platform", Command: "npm run build"},
	{Name: "build:platform:linux", Command: "node ./node_modules/electron-builder/out/cli/cli --linux zip"},
	{Name: "build:platform:win", Command: "node ./node_modules/electron-builder/out/cli/cli --win --x64"},
	{Name: "build:platform:all", Command: "node ./node_modules/electron-builder/out/cli/cli -mwl"},
	{Name: "start", Command: "electron ./src/electron"},
	{Name: "package", Command: "npm run build:platform && node ./node_modules/electron-builder/out/cli/cli --publish never"},
	{Name: "package:all", Command: "npm run build:platform && npm run build:platform:all"},
	{Name: "package:win", Command: "npm run build:platform && npm run build:platform:win"},
	{Name: "package:linux", Command: "npm run build:platform && npm run build:platform:linux"},
	{Name: "rebuild", Command: "node ./node_modules/electron-builder/out/cli/cli install-app-deps"},
}

// LegacyScripts are always removed from the merged script table.
var LegacyScripts = []string{"eslint", "mocha"}

// MergeScripts overlays additions onto existing and drops removals.
//
// Existing entries keep their position; an addition with the same name
// replaces the command in place. Remaining additions are appended in order.
// Neither input is modified.
func MergeScripts(existing, additions []Script, removals []string) []Script {
	drop := make(map[string]struct{}, len(removals))
	for _, name := range removals {
		drop[name] = struct{}{}
	}

	override := make(map[string]string, len(additions))
	for _, s := range additions {
		override[s.Name] = s.Command
	}

	merged := make([]Script, 0, len(existing)+len(additions))
	seen := make(map[string]struct{}, len(existing)+len(additions))

	for _, s := range existing {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}

		if cmd, ok := override[s.Name]; ok {
			s.Command = cmd
			s.Raw = ""
		}
		if _, ok := drop[s.Name]; ok {
			continue
		}
		merged = append(merged, s)
	}

	for _, s := range additions {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}

		if _, ok := drop[s.Name]; ok {
			continue
		}
		merged = append(merged, Script{Name: s.Name, Command: override[s.Name]})
	}

	return merged
}

// Lookup returns the command for name.
func Lookup(scripts []Script, name string) (string, bool) {
	for _, s := range scripts {
		if s.Name == name {
			return s.Command, true
		}
	}
	return "", false
}

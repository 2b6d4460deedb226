package npm

import (
	"context"
)

// DependencyKind selects where installed packages are recorded in package.json.
type DependencyKind string

const (
	// Dev records packages under devDependencies.
	Dev DependencyKind = "dev"
	// Runtime records packages under dependencies.
	Runtime DependencyKind = "runtime"
)

// DevDependencies are installed as development-only dependencies.
var DevDependencies = []string{
	"babel-register",
	"debug",
	"electron",
	"electron-builder",
	"eslint",
	"mocha",
	"rimraf",
	"webpack",
}

// RuntimeDependencies are installed as regular dependencies.
var RuntimeDependencies = []string{
	"concurrently",
	"cross-env",
	"electron-debug",
}

// Installer adds packages to a project through its package manager.
// Implementations must be safe for concurrent use.
type Installer interface {
	Install(ctx context.Context, kind DependencyKind, packages []string) error
}

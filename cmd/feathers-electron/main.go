package main

import (
	"fmt"
	"os"

	"github.com/jakoblorz/feathers-electron/internal/cli"
	"github.com/jakoblorz/feathers-electron/internal/tui"
)

func main() {
	if err := cli.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

package tui

import (
	"fmt"
	"io"
	"strings"
)

// Reporter prints step progress for a scaffolding run.
type Reporter struct {
	out   io.Writer
	quiet bool
}

// NewReporter writes to out. A quiet reporter only prints the summary.
func NewReporter(out io.Writer, quiet bool) *Reporter {
	return &Reporter{out: out, quiet: quiet}
}

// Step announces the start of a step.
func (r *Reporter) Step(format string, args ...any) {
	if r == nil || r.quiet {
		return
	}
	_, _ = fmt.Fprintln(r.out, StepStyle.Render("› ")+fmt.Sprintf(format, args...))
}

// Detail prints a subordinate line under the current step.
func (r *Reporter) Detail(format string, args ...any) {
	if r == nil || r.quiet {
		return
	}
	_, _ = fmt.Fprintln(r.out, SubtleStyle.Render("  "+fmt.Sprintf(format, args...)))
}

// Summary is the outcome shown after a run.
type Summary struct {
	Skipped   bool
	Directory string
	Copied    []string
	Scripts   int
	Installed map[string][]string
}

// RenderSummary renders the outcome of a run.
func RenderSummary(s Summary) string {
	var b strings.Builder

	if s.Skipped {
		b.WriteString(SubtleStyle.Render("Skipped Electron installation"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(SuccessStyle.Render("✓ Electron added"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Directory: %s\n", SelectedStyle.Render(s.Directory)))
	b.WriteString(fmt.Sprintf("Copied %d file(s):\n", len(s.Copied)))
	for i, file := range s.Copied {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, file))
	}
	b.WriteString(fmt.Sprintf("Scripts in package.json: %d\n", s.Scripts))

	for _, kind := range []string{"dev", "runtime"} {
		packages, ok := s.Installed[kind]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("Installed %s dependencies: %s\n", kind, strings.Join(packages, ", ")))
	}
	if len(s.Installed) == 0 {
		b.WriteString(DescStyle.Render("Dependencies were not installed. Install the Electron toolchain before running the app."))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("Run `npm start` to launch the desktop app."))
	b.WriteString("\n")

	return b.String()
}

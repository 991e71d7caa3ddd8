package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

// palette mirrors the colours used across the CLI output.
var palette = struct {
	Primary, Muted, Success, Warning, Error lipgloss.Color
}{
	Primary: lipgloss.Color("#7C3AED"),
	Muted:   lipgloss.Color("#6C7086"),
	Success: lipgloss.Color("#A6E3A1"),
	Warning: lipgloss.Color("#F9E2AF"),
	Error:   lipgloss.Color("#F38BA8"),
}

// outputStyles holds the styles for one writer. They are plain unless the
// writer is a terminal.
type outputStyles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func stylesFor(w io.Writer) outputStyles {
	plain := lipgloss.NewStyle()
	s := outputStyles{Title: plain, Label: plain, Success: plain, Warning: plain, Error: plain}
	if !isTerminal(w) {
		return s
	}
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(palette.Primary)
	s.Label = lipgloss.NewStyle().Foreground(palette.Muted)
	s.Success = lipgloss.NewStyle().Bold(true).Foreground(palette.Success)
	s.Warning = lipgloss.NewStyle().Foreground(palette.Warning)
	s.Error = lipgloss.NewStyle().Bold(true).Foreground(palette.Error)
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printRunSummary reports a finished run on the command's output.
func printRunSummary(cmd *cobra.Command, res *domain.RunResult) {
	out := cmd.OutOrStdout()
	st := stylesFor(out)

	cmd.Println(st.Title.Render("bedstat run " + res.RunID))
	if res.Identity != "" {
		cmd.Printf("  %s %s\n", st.Label.Render("File ID:   "), res.Identity)
		cmd.Printf("  %s %s\n", st.Label.Render("Outfolder: "), res.Location.Dir)
	}

	commit := "skipped"
	if res.Committed {
		commit = "committed"
	}
	if res.State == domain.StateFailed {
		commit = "not committed"
	}
	cmd.Printf("  %s %s\n", st.Label.Render("Compute:   "), computeStatus(res))
	cmd.Printf("  %s %s\n", st.Label.Render("Commit:    "), commit)
	cmd.Printf("  %s %s\n", st.Label.Render("States:    "), statePath(res.Path))
	if !res.FinishedAt.IsZero() {
		cmd.Printf("  %s %s\n", st.Label.Render("Duration:  "), res.Duration().Round(time.Millisecond))
	}

	// Each warning was already logged by the run; only count them here.
	if n := len(res.Warnings); n > 0 {
		cmd.Printf("  %s %s\n", st.Label.Render("Warnings:  "),
			st.Warning.Render(fmt.Sprintf("%d missing search key(s), see run log", n)))
	}

	if res.Succeeded() {
		cmd.Printf("  %s\n", st.Success.Render("DONE"))
		return
	}
	if res.Err != nil {
		cmd.Printf("  %s %v\n", st.Error.Render("FAILED:"), res.Err)
	}
}

// computeStatus describes the compute step from the states the run entered.
func computeStatus(res *domain.RunResult) string {
	for _, s := range res.Path {
		switch s {
		case domain.StateComputed:
			return "computed"
		case domain.StateSkipped:
			return "skipped (target exists)"
		}
	}
	return "not completed"
}

func statePath(path []domain.RunState) string {
	names := make([]string, len(path))
	for i, s := range path {
		names[i] = s.String()
	}
	return strings.Join(names, " -> ")
}

package domain

import "strings"

// Command is a single external command line.
type Command struct {
	// Executable is the program to run (e.g. Rscript).
	Executable string

	// Args are passed verbatim, without shell interpretation.
	Args []string
}

// String renders the command line for logs and errors.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Executable)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// ExecResult is the observable outcome of running a Command.
type ExecResult struct {
	// ExitCode is the process exit status.
	ExitCode int
}

// Success reports whether the process exited zero.
func (r ExecResult) Success() bool {
	return r.ExitCode == 0
}

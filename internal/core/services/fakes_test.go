package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

// fakeRunner records commands and, when artifact is set, writes it where the
// command's --outputfolder and --fileid point. It never starts a process.
type fakeRunner struct {
	mu       sync.Mutex
	calls    []domain.Command
	exitCode int
	err      error
	artifact string
}

func (f *fakeRunner) Run(_ context.Context, cmd domain.Command, out io.Writer) (domain.ExecResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return domain.ExecResult{}, f.err
	}
	if f.artifact != "" {
		dir, id := argValue(cmd, "--outputfolder="), argValue(cmd, "--fileid=")
		if err := os.WriteFile(filepath.Join(dir, id+".json"), []byte(f.artifact), 0644); err != nil {
			return domain.ExecResult{}, err
		}
	}
	if out != nil {
		_, _ = io.WriteString(out, "fake computation output\n")
	}
	return domain.ExecResult{ExitCode: f.exitCode}, nil
}

func (f *fakeRunner) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func argValue(cmd domain.Command, prefix string) string {
	for _, a := range cmd.Args {
		if strings.HasPrefix(a, prefix) {
			return strings.TrimPrefix(a, prefix)
		}
	}
	return ""
}

// fakeLoader returns a fixed sample document.
type fakeLoader struct {
	doc   map[string]any
	err   error
	loads int
}

func (f *fakeLoader) Load(_ string) (map[string]any, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

// newTestRunContext creates a RunContext in a temp checkpoint directory.
func newTestRunContext(t *testing.T) *RunContext {
	t.Helper()
	rc, err := NewRunContext("test-run", t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close(domain.StateDone) })
	return rc
}

// writeFile creates path with content, making parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// CaptureOutput runs fn with os.Stdout redirected to a pipe and returns
// everything fn printed. os.Stdout is restored before returning. An error
// from fn is logged, not failed, so callers can assert on partial output.
//
//	out := testutil.CaptureOutput(t, func() error {
//		fmt.Println("hello")
//		return nil
//	})
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	saved := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = saved }()

	done := make(chan []byte, 1)
	go func() {
		b, _ := io.ReadAll(r)
		_ = r.Close()
		done <- b
	}()

	runErr := fn()
	if err := w.Close(); err != nil {
		t.Logf("closing stdout pipe: %v", err)
	}
	captured := <-done

	if runErr != nil {
		t.Logf("captured function returned: %v", runErr)
	}
	return string(captured)
}

// ExecuteCommand runs cmd with args and returns what it wrote to its output
// and error streams. stdin, when non-empty, is fed to cmd.InOrStdin.
//
// Example:
//
//	out, _, err := testutil.ExecuteCommand(t, cli.NewRootCommand(), "", "parse", "HTTP://A")
func ExecuteCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// WriteFile writes content to name inside a per-test temporary directory
// and returns the full path. The directory is removed when the test ends.
//
// Example:
//
//	path := testutil.WriteFile(t, "urls.txt", "http://a\nhttp://b\n")
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jongio/weburl/testutil"
)

func TestRun(t *testing.T) {
	var stderr bytes.Buffer
	out := testutil.CaptureOutput(t, func() error {
		if code := run([]string{"parse", "HTTP://Example.com/a/../b"}, &stderr); code != 0 {
			t.Errorf("expected exit code 0, got %d (stderr: %s)", code, stderr.String())
		}
		return nil
	})
	if !strings.HasPrefix(out, "http://example.com/b\n") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRunError(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"parse", "http://a:99999/"}, &stderr)
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: invalid port") {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
}

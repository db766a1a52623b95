// Package testutil provides common testing utilities for the weburl CLI.
//
// This package includes helpers for:
//   - Capturing stdout during test execution (CaptureOutput)
//   - Running a cobra command with captured streams (ExecuteCommand)
//   - Writing fixture files into a per-test temporary directory (WriteFile)
//
// All functions use t.Helper() for proper test line reporting.
//
// Example usage:
//
//	func TestParseCommand(t *testing.T) {
//	    out, _, err := testutil.ExecuteCommand(t, cli.NewRootCommand(), "", "parse", "HTTP://EXAMPLE.com")
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    if !strings.Contains(out, "http://example.com/") {
//	        t.Error("expected canonical URL")
//	    }
//	}
package testutil

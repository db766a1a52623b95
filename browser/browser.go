// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"fmt"
	"strings"
	"time"

	pkgbrowser "github.com/pkg/browser"

	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/urlutil"
)

// DefaultTimeout bounds how long Launch waits for the launcher.
const DefaultTimeout = 5 * time.Second

// Target selects where a URL is opened.
type Target string

const (
	// TargetDefault uses the system default browser
	TargetDefault Target = "default"
	// TargetSystem uses the system default browser (alias for TargetDefault)
	TargetSystem Target = "system"
	// TargetNone disables browser launching
	TargetNone Target = "none"
)

var targets = []Target{TargetDefault, TargetSystem, TargetNone}

// ParseTarget parses a target name. An empty string means TargetDefault.
func ParseTarget(s string) (Target, error) {
	if s == "" {
		return TargetDefault, nil
	}
	for _, t := range targets {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid browser target %q (valid options: %s)", s, TargetNames())
}

// TargetNames returns the valid target names, comma separated.
func TargetNames() string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Enabled reports whether t opens anything.
func (t Target) Enabled() bool {
	return t != TargetNone
}

// DisplayName returns a human-readable name for the target.
func (t Target) DisplayName() string {
	if !t.Enabled() {
		return "none"
	}
	return "default browser"
}

// LaunchOptions contains options for launching a browser.
type LaunchOptions struct {
	URL    string
	Target Target
	// Timeout for the launcher; DefaultTimeout when zero.
	Timeout time.Duration
	// Wait blocks until the launcher returns and reports its error.
	Wait bool
	// RequireHTTPS rejects plain http URLs unless the host is loopback.
	RequireHTTPS bool
}

// Launcher opens URLs with an injectable open function.
type Launcher struct {
	open func(url string) error
}

// NewLauncher returns a Launcher that calls open. A nil open uses
// github.com/pkg/browser.
func NewLauncher(open func(url string) error) *Launcher {
	if open == nil {
		open = pkgbrowser.OpenURL
	}
	return &Launcher{open: open}
}

var defaultLauncher = NewLauncher(nil)

// Launch opens opts.URL with the system launcher. See Launcher.Launch.
func Launch(opts LaunchOptions) (string, error) {
	return defaultLauncher.Launch(opts)
}

// Launch canonicalizes opts.URL and opens the canonical form. Only http and
// https URLs are accepted. It returns the canonical URL. Unless opts.Wait is
// set, the launcher runs in its own goroutine and failures are logged.
func (l *Launcher) Launch(opts LaunchOptions) (string, error) {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	u, err := urlutil.Parse(opts.URL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	canonical := u.String()
	if opts.RequireHTTPS {
		if err := urlutil.ValidateHTTPSOnly(canonical); err != nil {
			return "", err
		}
	}

	if !opts.Target.Enabled() {
		return canonical, nil
	}

	if opts.Wait {
		return canonical, l.launchSync(canonical, opts.Timeout)
	}
	go func() {
		if err := l.launchSync(canonical, opts.Timeout); err != nil {
			logutil.Warn("could not open browser automatically", "url", canonical, "error", err)
		}
	}()
	return canonical, nil
}

func (l *Launcher) launchSync(url string, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- l.open(url) }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("browser launch timed out after %s", timeout)
	}
}

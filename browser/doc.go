// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package browser opens canonicalized URLs in the system browser.
//
// Input is parsed with the WHATWG parser and only http and https URLs are
// accepted; the launcher (github.com/pkg/browser) always receives the
// canonical serialization, never the raw input. That rules out file: and
// javascript: URLs and any text that would not survive re-serialization.
//
//	canonical, err := browser.Launch(browser.LaunchOptions{
//	    URL:    "HTTPS://Example.com/a/./b",
//	    Target: browser.TargetDefault,
//	    Wait:   true,
//	})
//	// canonical == "https://example.com/a/b"
//
// TargetNone validates and canonicalizes without opening anything. With
// RequireHTTPS, plain http is only accepted for loopback hosts.
//
// Unless LaunchOptions.Wait is set, Launch returns immediately and launcher
// failures are logged through logutil as warnings.
package browser

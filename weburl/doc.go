// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package weburl parses URLs the way browsers do.
//
// Parsing follows the URL Living Standard state machine: it repairs what it
// can, records each repair as a non-fatal ParseError, and aborts only on a
// fatal condition such as an invalid port or an unparsable host.
//
// # Basic Usage
//
//	u, err := weburl.Parse("HTTP://Example.COM:80/a/./b/../c")
//	if err != nil {
//		return err
//	}
//	fmt.Println(u) // http://example.com/a/c
//
// # Relative References
//
//	base, _ := weburl.Parse("http://a/b/c/d;p?q")
//	u, _ := base.ResolveReference("../g") // http://a/b/g
//
// # Settings
//
// Settings select the escaping Standard, strict rejection of repaired input,
// the domain normalizer (for example host.IDNA) and an Observer that sees
// every parse outcome. A nil *Settings means the defaults.
//
//	s := &weburl.Settings{Standard: weburl.RFC2396, Strict: true}
//	u, err := s.Parse(raw, nil)
//
// URLs are immutable and safe to share between goroutines.
package weburl

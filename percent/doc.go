// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package percent implements the percent-encoding codec used by URL parsing.
//
// Every URL component has a named encode set: the set of code points that
// must be written as %XX escapes when they appear in that component. The sets
// nest by strictness:
//
//	C0Control ⊂ Fragment
//	C0Control ⊂ Query ⊂ Path ⊂ Userinfo
//	Query ⊂ SpecialQuery
//
// C0 controls, DEL and every non-ASCII code point belong to every set.
//
// # Usage
//
//	s := percent.Encode("a b/c", percent.Path)   // "a%20b/c"
//	b := percent.DecodeString("a%20b")           // "a b"
//
// Encode escapes '%' itself, so Decode(Encode(b, set)) returns b for any
// byte sequence. The URL parser instead uses AppendRune, which leaves '%'
// alone so already-escaped input is preserved as written.
package percent

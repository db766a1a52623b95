// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import "strings"

func isASCIIAlpha(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigit(r)
}

func toASCIILower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// isURLCodePoint reports whether r may appear unescaped in a valid URL.
func isURLCodePoint(r rune) bool {
	if r < 0x80 {
		return isASCIIAlphanumeric(r) || strings.ContainsRune("!$&'()*+,-./:;=?@_~", r)
	}
	switch {
	case r < 0xA0:
		return false
	case r >= 0xD800 && r <= 0xDFFF:
		return false
	case r >= 0xFDD0 && r <= 0xFDEF:
		return false
	case r&0xFFFE == 0xFFFE:
		return false
	}
	return r <= 0x10FFFF
}

// isWindowsDriveLetter matches "C:" and "C|".
func isWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && (s[1] == ':' || s[1] == '|')
}

// isNormalizedWindowsDriveLetter matches "C:" only.
func isNormalizedWindowsDriveLetter(s string) bool {
	return isWindowsDriveLetter(s) && s[1] == ':'
}

// startsWithWindowsDriveLetter reports whether runes begin with a drive
// letter followed by the end of input or a path, query or fragment delimiter.
func startsWithWindowsDriveLetter(runes []rune) bool {
	if len(runes) < 2 || !isASCIIAlpha(runes[0]) || (runes[1] != ':' && runes[1] != '|') {
		return false
	}
	if len(runes) == 2 {
		return true
	}
	switch runes[2] {
	case '/', '\\', '?', '#':
		return true
	}
	return false
}

func isSingleDotSegment(s string) bool {
	return s == "." || strings.EqualFold(s, "%2e")
}

func isDoubleDotSegment(s string) bool {
	switch strings.ToLower(s) {
	case "..", ".%2e", "%2e.", "%2e%2e":
		return true
	}
	return false
}

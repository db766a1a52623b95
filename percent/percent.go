// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package percent

import (
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// EncodeSet is a bitmap over ASCII. Code points below 0x20, DEL and anything
// above 0x7E are members of every set.
type EncodeSet [2]uint64

// Named encode sets.
var (
	C0Control    = EncodeSet{}
	Fragment     = C0Control.With(' ', '"', '<', '>', '`')
	Query        = C0Control.With(' ', '"', '#', '<', '>')
	SpecialQuery = Query.With('\'')
	Path         = Query.With('?', '`', '{', '}')
	Userinfo     = Path.With('/', ':', ';', '=', '@', '[', '\\', ']', '^', '|')

	// RFC2396Unsafe holds the printable ASCII characters RFC 2396 does not
	// allow unescaped anywhere in a URI reference, excluding '%' and '#'.
	RFC2396Unsafe = C0Control.With(' ', '"', '<', '>', '`', '{', '}', '|', '\\', '^', '[', ']')
)

// With returns a copy of s that also contains the given ASCII characters.
func (s EncodeSet) With(chars ...byte) EncodeSet {
	for _, c := range chars {
		if c < utf8.RuneSelf {
			s[c>>6] |= 1 << (c & 63)
		}
	}
	return s
}

// Union returns the set of code points in s or o.
func (s EncodeSet) Union(o EncodeSet) EncodeSet {
	return EncodeSet{s[0] | o[0], s[1] | o[1]}
}

// Contains reports whether r must be escaped under s.
func (s EncodeSet) Contains(r rune) bool {
	if r < 0x20 || r > 0x7E {
		return true
	}
	return s[r>>6]&(1<<(uint(r)&63)) != 0
}

func (s EncodeSet) containsByte(c byte) bool {
	return s.Contains(rune(c))
}

// Encode percent-encodes every byte of text that is not permitted by set.
// '%' is always escaped so the result decodes back to text exactly.
func Encode(text string, set EncodeSet) string {
	n := 0
	for i := 0; i < len(text); i++ {
		if c := text[i]; c == '%' || set.containsByte(c) {
			n++
		}
	}
	if n == 0 {
		return text
	}

	out := make([]byte, 0, len(text)+2*n)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '%' || set.containsByte(c) {
			out = appendEscape(out, c)
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

// AppendRune appends r to dst, percent-encoding its UTF-8 bytes if r is in
// set. '%' is never escaped here.
func AppendRune(dst []byte, r rune, set EncodeSet) []byte {
	if r == '%' || !set.Contains(r) {
		return utf8.AppendRune(dst, r)
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for _, c := range buf[:n] {
		dst = appendEscape(dst, c)
	}
	return dst
}

// EncodeRunes is the string form of repeated AppendRune calls.
func EncodeRunes(text string, set EncodeSet) string {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		out = AppendRune(out, r, set)
	}
	return string(out)
}

// Decode reverses %XX escapes. A '%' not followed by two hex digits is kept
// literally.
func Decode(text string) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '%' && i+2 < len(text) && isHex(text[i+1]) && isHex(text[i+2]) {
			out = append(out, unhex(text[i+1])<<4|unhex(text[i+2]))
			i += 2
			continue
		}
		out = append(out, c)
	}
	return out
}

// DecodeString is Decode returning a string.
func DecodeString(text string) string {
	return string(Decode(text))
}

// ValidEscapeAt reports whether runes[i] starts a well-formed %XX escape.
func ValidEscapeAt(runes []rune, i int) bool {
	return i+2 < len(runes) && runes[i] == '%' &&
		runes[i+1] < utf8.RuneSelf && isHex(byte(runes[i+1])) &&
		runes[i+2] < utf8.RuneSelf && isHex(byte(runes[i+2]))
}

func appendEscape(dst []byte, c byte) []byte {
	return append(dst, '%', upperhex[c>>4], upperhex[c&0xF])
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package host

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jongio/weburl/percent"
)

var (
	// ErrInvalidHost indicates a host with forbidden code points or an empty domain.
	ErrInvalidHost = errors.New("invalid host")
	// ErrInvalidIPv4 indicates a numeric host that is not a valid IPv4 address.
	ErrInvalidIPv4 = errors.New("invalid IPv4 address")
	// ErrInvalidIPv6 indicates a malformed bracketed IPv6 literal.
	ErrInvalidIPv6 = errors.New("invalid IPv6 address")
)

// Kind identifies a Host variant.
type Kind uint8

const (
	KindDomain Kind = iota + 1
	KindIPv4
	KindIPv6
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	case KindIPv4:
		return "ipv4"
	case KindIPv6:
		return "ipv6"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Host is a parsed URL host. The set of implementations is closed: Domain,
// IPv4Address, IPv6Address and OpaqueHost. All of them are comparable, so two
// hosts can be compared with ==.
type Host interface {
	Kind() Kind
	// String returns the serialized host as it appears in a URL.
	String() string

	sealed()
}

// Domain is a lowercase domain name. The empty Domain is the explicit empty
// host of a file URL.
type Domain string

func (Domain) Kind() Kind       { return KindDomain }
func (d Domain) String() string { return string(d) }
func (Domain) sealed()          {}

// Labels splits the domain on dots.
func (d Domain) Labels() []string {
	if d == "" {
		return nil
	}
	return strings.Split(string(d), ".")
}

// OpaqueHost is the percent-encoded host of a non-special URL.
type OpaqueHost string

func (OpaqueHost) Kind() Kind       { return KindOpaque }
func (h OpaqueHost) String() string { return string(h) }
func (OpaqueHost) sealed()          {}

// Normalizer maps a percent-decoded domain to its canonical ASCII form.
type Normalizer func(domain string) (string, error)

// ASCIILowercase lowercases ASCII letters and leaves everything else as is.
func ASCIILowercase(domain string) (string, error) {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, domain), nil
}

// Parse parses input as the host of a special (special=true) or non-special
// URL using ASCIILowercase for domains.
func Parse(input string, special bool) (Host, error) {
	return ParseWith(input, special, nil)
}

// ParseWith is Parse with a custom domain Normalizer. A nil normalizer means
// ASCIILowercase.
func ParseWith(input string, special bool, normalize Normalizer) (Host, error) {
	if strings.HasPrefix(input, "[") {
		if len(input) < 2 || !strings.HasSuffix(input, "]") {
			return nil, fmt.Errorf("%w: unterminated literal %q", ErrInvalidIPv6, input)
		}
		addr, err := parseIPv6(input[1 : len(input)-1])
		if err != nil {
			return nil, err
		}
		return addr, nil
	}

	if !special {
		return parseOpaque(input)
	}

	if normalize == nil {
		normalize = ASCIILowercase
	}
	domain, err := normalize(percent.DecodeString(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHost, err)
	}
	if domain == "" {
		return nil, fmt.Errorf("%w: empty host", ErrInvalidHost)
	}
	if i := strings.IndexFunc(domain, isForbiddenDomainCodePoint); i >= 0 {
		return nil, fmt.Errorf("%w: forbidden code point %q in %q", ErrInvalidHost, domain[i], domain)
	}

	if endsInNumber(domain) {
		addr, err := parseIPv4(domain)
		if err != nil {
			return nil, err
		}
		return addr, nil
	}
	return Domain(domain), nil
}

func parseOpaque(input string) (Host, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: empty host", ErrInvalidHost)
	}
	for _, r := range input {
		if r != '%' && isForbiddenDomainCodePoint(r) {
			return nil, fmt.Errorf("%w: forbidden code point %q in %q", ErrInvalidHost, r, input)
		}
	}
	return OpaqueHost(percent.EncodeRunes(input, percent.C0Control)), nil
}

func isForbiddenDomainCodePoint(r rune) bool {
	switch r {
	case 0, '\t', '\n', '\r', ' ', '#', '%', '/', ':', '?', '@', '[', '\\', ']':
		return true
	}
	return false
}

// endsInNumber reports whether the last label, ignoring one trailing empty
// label, is a number. Such hosts must parse as IPv4 or fail.
func endsInNumber(domain string) bool {
	parts := strings.Split(domain, ".")
	if parts[len(parts)-1] == "" {
		if len(parts) == 1 {
			return false
		}
		parts = parts[:len(parts)-1]
	}
	last := parts[len(parts)-1]
	if last != "" && strings.Trim(last, "0123456789") == "" {
		return true
	}
	_, _, ok := parseIPv4Number(last)
	return ok
}

// parseIPv4Number parses one dotted component in decimal, 0x-hex or
// leading-zero octal. overflow is set when the value does not fit in 64 bits.
func parseIPv4Number(s string) (value uint64, overflow bool, ok bool) {
	if s == "" {
		return 0, false, false
	}
	base := 10
	switch {
	case len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X"):
		s, base = s[2:], 16
		if s == "" {
			return 0, false, true
		}
	case len(s) >= 2 && s[0] == '0':
		s, base = s[1:], 8
	}
	for i := 0; i < len(s); i++ {
		if !isDigitIn(s[i], base) {
			return 0, false, false
		}
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, true, true
	}
	return v, false, true
}

func isDigitIn(c byte, base int) bool {
	switch base {
	case 8:
		return '0' <= c && c <= '7'
	case 16:
		return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
	default:
		return '0' <= c && c <= '9'
	}
}

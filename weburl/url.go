// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import (
	"encoding/binary"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/jongio/weburl/host"
)

var defaultPorts = map[string]int{
	"ftp":   21,
	"file":  -1,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// IsSpecialScheme reports whether scheme is one of http, https, ws, wss,
// ftp or file.
func IsSpecialScheme(scheme string) bool {
	_, ok := defaultPorts[scheme]
	return ok
}

// DefaultPort returns the default port of a special scheme, or -1.
func DefaultPort(scheme string) int {
	if port, ok := defaultPorts[scheme]; ok {
		return port
	}
	return -1
}

// URL is a parsed, canonicalized URL. URLs are immutable and are only
// produced by the parser; the zero value is not a valid URL.
type URL struct {
	scheme      string
	schemeData  string
	username    string
	password    string
	hasUserinfo bool
	hasPassword bool
	host        host.Host
	port        int
	hasPort     bool
	path        []string
	query       string
	hasQuery    bool
	fragment    string
	hasFragment bool
	relative    bool
}

// Scheme returns the lowercase scheme.
func (u *URL) Scheme() string { return u.scheme }

// SchemeData returns the opaque remainder of a non-hierarchical URL, such as
// "foo@example.com" in "mailto:foo@example.com".
func (u *URL) SchemeData() string { return u.schemeData }

// Username returns the percent-encoded username, or "" if there is none.
func (u *URL) Username() string { return u.username }

// Password returns the percent-encoded password and whether one is present.
func (u *URL) Password() (string, bool) { return u.password, u.hasPassword }

// UserInfo returns "username" or "username:password" and whether the URL
// has userinfo at all.
func (u *URL) UserInfo() (string, bool) {
	if !u.hasUserinfo {
		return "", false
	}
	if !u.hasPassword {
		return u.username, true
	}
	return u.username + ":" + u.password, true
}

// Host returns the host, or nil when the URL has none.
func (u *URL) Host() host.Host { return u.host }

// HostString returns the serialized host, or "".
func (u *URL) HostString() string {
	if u.host == nil {
		return ""
	}
	return u.host.String()
}

// Port returns the explicit port. A port equal to the scheme default is
// never stored, so ok is false for "http://example.com:80/".
func (u *URL) Port() (port int, ok bool) { return u.port, u.hasPort }

// EffectivePort returns the explicit port, else the scheme default, else -1.
func (u *URL) EffectivePort() int {
	if u.hasPort {
		return u.port
	}
	return DefaultPort(u.scheme)
}

// Path returns a copy of the percent-encoded path segments.
func (u *URL) Path() []string { return slices.Clone(u.path) }

// PathString returns "/" followed by the segments joined with "/", or "" for
// an opaque URL.
func (u *URL) PathString() string {
	if !u.relative {
		return ""
	}
	return "/" + strings.Join(u.path, "/")
}

// Query returns the encoded query without '?' and whether one is present.
func (u *URL) Query() (string, bool) { return u.query, u.hasQuery }

// Fragment returns the encoded fragment without '#' and whether one is present.
func (u *URL) Fragment() (string, bool) { return u.fragment, u.hasFragment }

// File returns the path, query and fragment as they appear in the
// serialization.
func (u *URL) File() string {
	var b strings.Builder
	b.WriteString(u.PathString())
	u.writeQueryAndFragment(&b)
	return b.String()
}

// Authority returns "[userinfo@]host[:port]", or "" for an opaque URL.
func (u *URL) Authority() string {
	if !u.relative {
		return ""
	}
	var b strings.Builder
	u.writeAuthority(&b)
	return b.String()
}

// IsHierarchical reports whether the URL has the scheme://authority/path
// form. Opaque URLs such as mailto: keep their remainder in SchemeData.
func (u *URL) IsHierarchical() bool { return u.relative }

// IsOpaque is the negation of IsHierarchical.
func (u *URL) IsOpaque() bool { return !u.relative }

// IsSpecial reports whether the URL's scheme is special.
func (u *URL) IsSpecial() bool { return IsSpecialScheme(u.scheme) }

// String returns the canonical serialization.
func (u *URL) String() string {
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteByte(':')
	if u.relative {
		b.WriteString("//")
		u.writeAuthority(&b)
		b.WriteByte('/')
		b.WriteString(strings.Join(u.path, "/"))
	} else {
		b.WriteString(u.schemeData)
	}
	u.writeQueryAndFragment(&b)
	return b.String()
}

// Serialize is an alias for String.
func (u *URL) Serialize() string { return u.String() }

// MarshalText implements encoding.TextMarshaler.
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *URL) writeAuthority(b *strings.Builder) {
	if u.hasUserinfo {
		b.WriteString(u.username)
		if u.hasPassword {
			b.WriteByte(':')
			b.WriteString(u.password)
		}
		b.WriteByte('@')
	}
	if u.host != nil {
		b.WriteString(u.host.String())
	}
	if u.hasPort {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(u.port))
	}
}

func (u *URL) writeQueryAndFragment(b *strings.Builder) {
	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
}

// Equal reports whether u and o have identical components.
func (u *URL) Equal(o *URL) bool {
	if u == o {
		return true
	}
	if u == nil || o == nil {
		return false
	}
	return u.relative == o.relative &&
		u.scheme == o.scheme &&
		u.schemeData == o.schemeData &&
		u.hasUserinfo == o.hasUserinfo && u.username == o.username &&
		u.hasPassword == o.hasPassword && u.password == o.password &&
		u.host == o.host &&
		u.hasPort == o.hasPort && u.port == o.port &&
		u.hasQuery == o.hasQuery && u.query == o.query &&
		u.hasFragment == o.hasFragment && u.fragment == o.fragment &&
		slices.Equal(u.path, o.path)
}

// Hash returns a hash of every component. Equal URLs hash equally.
func (u *URL) Hash() uint64 {
	d := xxhash.New()
	var scratch []byte
	field := func(s string, present bool) {
		scratch = scratch[:0]
		if present {
			scratch = append(scratch, 1)
		} else {
			scratch = append(scratch, 0)
		}
		scratch = binary.LittleEndian.AppendUint64(scratch, uint64(len(s)))
		_, _ = d.Write(scratch)
		_, _ = d.WriteString(s)
	}

	field(u.scheme, true)
	field(u.schemeData, true)
	field(u.username, u.hasUserinfo)
	field(u.password, u.hasPassword)
	if u.host != nil {
		field(u.host.Kind().String()+":"+u.host.String(), true)
	} else {
		field("", false)
	}
	field(strconv.Itoa(u.port), u.hasPort)
	field(strconv.Itoa(len(u.path)), true)
	for _, seg := range u.path {
		field(seg, true)
	}
	field(u.query, u.hasQuery)
	field(u.fragment, u.hasFragment)
	field("", u.relative)
	return d.Sum64()
}

// WithScheme returns a copy of u with its scheme replaced, using default
// settings. See Settings.WithScheme.
func (u *URL) WithScheme(scheme string) (*URL, error) {
	return defaultSettings.WithScheme(u, scheme)
}

// ResolveReference parses ref relative to u using default settings.
func (u *URL) ResolveReference(ref string) (*URL, error) {
	return defaultSettings.Parse(ref, u)
}

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import (
	"fmt"
	"strings"

	"github.com/jongio/weburl/host"
	"github.com/jongio/weburl/percent"
)

// Standard selects the escaping rules applied to URL components.
type Standard uint8

const (
	// WHATWG escapes exactly what the URL Living Standard requires.
	WHATWG Standard = iota
	// RFC2396 additionally escapes characters RFC 2396 forbids, so the
	// serialization is accepted by strict URI parsers such as net/url.
	RFC2396
)

func (s Standard) String() string {
	if s == RFC2396 {
		return "rfc2396"
	}
	return "whatwg"
}

// ParseStandard parses "whatwg" or "rfc2396", case-insensitively.
func ParseStandard(s string) (Standard, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "whatwg":
		return WHATWG, nil
	case "rfc2396", "rfc_2396", "rfc-2396":
		return RFC2396, nil
	default:
		return WHATWG, fmt.Errorf("unknown standard %q (expected whatwg or rfc2396)", s)
	}
}

// Outcome is reported to an Observer after every parse.
type Outcome struct {
	Scheme string
	// Errors holds the non-fatal errors recorded during the parse.
	Errors []*ParseError
	// Fatal is the error that aborted the parse, if any.
	Fatal *ParseError
}

// Observer receives parse outcomes. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveParse(Outcome)
}

// Settings configures parsing. A Settings value must not be modified once it
// is in use; a single *Settings may be shared across goroutines. A nil
// *Settings means the defaults.
type Settings struct {
	Standard Standard
	// Strict rejects any input that records a non-fatal error.
	Strict bool
	// Normalizer maps decoded domains to ASCII; nil means host.ASCIILowercase.
	Normalizer host.Normalizer
	Observer   Observer
}

var defaultSettings = &Settings{}

type encodeSets struct {
	userinfo     percent.EncodeSet
	path         percent.EncodeSet
	query        percent.EncodeSet
	specialQuery percent.EncodeSet
	fragment     percent.EncodeSet
	opaque       percent.EncodeSet
}

func (s *Settings) encodeSets() encodeSets {
	sets := encodeSets{
		userinfo:     percent.Userinfo,
		path:         percent.Path,
		query:        percent.Query,
		specialQuery: percent.SpecialQuery,
		fragment:     percent.Fragment,
		opaque:       percent.C0Control,
	}
	if s.Standard != RFC2396 {
		return sets
	}
	unsafe := percent.RFC2396Unsafe
	withHash := unsafe.With('#')
	sets.userinfo = sets.userinfo.Union(unsafe)
	sets.path = sets.path.Union(unsafe)
	sets.query = sets.query.Union(withHash)
	sets.specialQuery = sets.specialQuery.Union(withHash)
	sets.fragment = sets.fragment.Union(withHash)
	sets.opaque = sets.opaque.Union(unsafe)
	return sets
}

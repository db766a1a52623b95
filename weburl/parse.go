// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import (
	"errors"
	"strings"

	"github.com/jongio/weburl/logutil"
)

// Parse parses an absolute URL with default settings.
func Parse(input string) (*URL, error) {
	return defaultSettings.Parse(input, nil)
}

// ParseWithBase parses input as a reference relative to base. base may be
// nil, in which case input must be absolute.
func ParseWithBase(base *URL, input string) (*URL, error) {
	return defaultSettings.Parse(input, base)
}

// ParseWithSettings parses input with the given settings and optional base.
func ParseWithSettings(settings *Settings, input string, base *URL) (*URL, error) {
	return settings.Parse(input, base)
}

// ParseWithErrors parses input and also returns every non-fatal error that
// was recorded and repaired. Settings.Strict is not applied; the caller
// decides what to do with the recorded errors.
func ParseWithErrors(settings *Settings, input string, base *URL) (*URL, []*ParseError, error) {
	return settings.ParseWithErrors(input, base)
}

// Parse parses input against an optional base. In strict mode any recorded
// non-fatal error rejects the input with ValidationErrors.
func (s *Settings) Parse(input string, base *URL) (*URL, error) {
	if s == nil {
		s = defaultSettings
	}
	u, errs, err := s.ParseWithErrors(input, base)
	if err != nil {
		return nil, err
	}
	if s.Strict && len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return u, nil
}

// ParseWithErrors is the lenient form of Parse.
func (s *Settings) ParseWithErrors(input string, base *URL) (*URL, []*ParseError, error) {
	if s == nil {
		s = defaultSettings
	}
	p := newParser(s, input, base)
	u, err := p.run(stateSchemeStart)
	s.report(p, err)
	if err != nil {
		return nil, p.errs, err
	}
	return u, p.errs, nil
}

// WithScheme returns a copy of u with its scheme replaced.
//
// When the old and new schemes are both special (and neither is file), only
// the scheme states run, with the host, userinfo, path, query and fragment
// carried over as components; a port equal to the new scheme's default is
// dropped. Otherwise the scheme is substituted in the serialization and the
// result is parsed from scratch, which may change whether the URL is
// hierarchical and how its host is interpreted.
func (s *Settings) WithScheme(u *URL, scheme string) (*URL, error) {
	if s == nil {
		s = defaultSettings
	}
	if !isValidScheme(scheme) {
		return nil, newParseError(InvalidScheme, -1, "%q is not a valid scheme", scheme)
	}

	newScheme := strings.ToLower(scheme)
	if IsSpecialScheme(newScheme) && IsSpecialScheme(u.scheme) &&
		(newScheme == "file") == (u.scheme == "file") {
		p := newOverrideParser(s, newScheme+":", u)
		out, err := p.run(stateSchemeStart)
		s.report(p, err)
		return out, err
	}
	return s.Parse(newScheme+u.String()[len(u.scheme):], nil)
}

func isValidScheme(scheme string) bool {
	if scheme == "" || !isASCIIAlpha(rune(scheme[0])) {
		return false
	}
	for _, r := range scheme[1:] {
		if !isASCIIAlphanumeric(r) && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

// report hands the outcome to the observer and logs validation errors when
// debug logging is on.
func (s *Settings) report(p *parser, err error) {
	var fatal *ParseError
	if err != nil {
		errors.As(err, &fatal)
	}

	if s.Observer != nil {
		s.Observer.ObserveParse(Outcome{Scheme: p.u.scheme, Errors: p.errs, Fatal: fatal})
	}

	if !logutil.IsDebugEnabled() || (len(p.errs) == 0 && fatal == nil) {
		return
	}
	log := logutil.NewLogger("parser").WithFields("scheme", p.u.scheme)
	for _, e := range p.errs {
		log.Debug("validation error", "kind", e.Kind.String(), "position", e.Position, "message", e.Message)
	}
	if fatal != nil {
		log.Debug("parse failed", "kind", fatal.Kind.String(), "position", fatal.Position, "message", fatal.Message)
	}
}

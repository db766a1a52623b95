// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jongio/weburl/host"
	"github.com/jongio/weburl/percent"
)

// state is a parser state. The set is closed; step dispatches on it.
type state uint8

const (
	stateSchemeStart state = iota
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateOpaquePath
	stateQuery
	stateFragment
	stateDone
)

var stateNames = [...]string{
	stateSchemeStart:                   "scheme start",
	stateScheme:                        "scheme",
	stateNoScheme:                      "no scheme",
	stateSpecialRelativeOrAuthority:    "special relative or authority",
	statePathOrAuthority:               "path or authority",
	stateRelative:                      "relative",
	stateRelativeSlash:                 "relative slash",
	stateSpecialAuthoritySlashes:       "special authority slashes",
	stateSpecialAuthorityIgnoreSlashes: "special authority ignore slashes",
	stateAuthority:                     "authority",
	stateHost:                          "host",
	statePort:                          "port",
	stateFile:                          "file",
	stateFileSlash:                     "file slash",
	stateFileHost:                      "file host",
	statePathStart:                     "path start",
	statePath:                          "path",
	stateOpaquePath:                    "opaque path",
	stateQuery:                         "query",
	stateFragment:                      "fragment",
	stateDone:                          "done",
}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "invalid"
}

// eof is the code point seen once the cursor passes the end of input.
const eof rune = -1

type parser struct {
	settings *Settings
	sets     encodeSets
	base     *URL
	input    []rune
	pointer  int

	u          URL
	buf        []byte
	schemeData []byte
	username   []byte
	password   []byte
	query      []byte
	fragment   []byte

	atSignSeen        bool
	insideBrackets    bool
	passwordTokenSeen bool
	// override is set when only the scheme of an existing URL is replaced.
	override bool

	errs []*ParseError
}

func newParser(settings *Settings, input string, base *URL) *parser {
	p := &parser{settings: settings, sets: settings.encodeSets(), base: base}
	p.preprocess(input)
	return p
}

// newOverrideParser starts from the components of u and only runs the
// scheme states over input.
func newOverrideParser(settings *Settings, input string, u *URL) *parser {
	p := &parser{settings: settings, sets: settings.encodeSets(), input: []rune(input), override: true}
	p.u = *u
	p.u.path = slices.Clone(u.path)
	p.schemeData = []byte(u.schemeData)
	p.username = []byte(u.username)
	p.password = []byte(u.password)
	p.query = []byte(u.query)
	p.fragment = []byte(u.fragment)
	return p
}

func (p *parser) preprocess(input string) {
	trimmed := strings.TrimFunc(input, func(r rune) bool { return r <= ' ' })
	if trimmed != input {
		p.errs = append(p.errs, newParseError(IllegalWhitespace, -1, "leading or trailing C0 control or space"))
	}
	if strings.ContainsAny(trimmed, "\t\n\r") {
		p.errs = append(p.errs, newParseError(IllegalWhitespace, -1, "tab or newline in input"))
		trimmed = strings.Map(func(r rune) rune {
			if r == '\t' || r == '\n' || r == '\r' {
				return -1
			}
			return r
		}, trimmed)
	}
	p.input = []rune(trimmed)
}

// run drives the state machine from start until the input is consumed or a
// state returns stateDone.
func (p *parser) run(start state) (*URL, error) {
	s := start
	for ; p.pointer <= len(p.input); p.pointer++ {
		next, err := p.step(s, p.at(p.pointer))
		if err != nil {
			return nil, err
		}
		if next == stateDone {
			break
		}
		s = next
	}
	return p.build(), nil
}

// step consumes one code point in state s and returns the next state.
// A handler that needs to reprocess c in the next state decrements the
// pointer.
func (p *parser) step(s state, c rune) (state, error) {
	switch s {
	case stateSchemeStart:
		return p.schemeStart(c)
	case stateScheme:
		return p.scheme(c)
	case stateNoScheme:
		return p.noScheme(c)
	case stateSpecialRelativeOrAuthority:
		return p.specialRelativeOrAuthority(c), nil
	case statePathOrAuthority:
		return p.pathOrAuthority(c), nil
	case stateRelative:
		return p.relative(c), nil
	case stateRelativeSlash:
		return p.relativeSlash(c), nil
	case stateSpecialAuthoritySlashes:
		return p.specialAuthoritySlashes(c), nil
	case stateSpecialAuthorityIgnoreSlashes:
		return p.specialAuthorityIgnoreSlashes(c), nil
	case stateAuthority:
		return p.authority(c)
	case stateHost:
		return p.host(c)
	case statePort:
		return p.port(c)
	case stateFile:
		return p.file(c), nil
	case stateFileSlash:
		return p.fileSlash(c), nil
	case stateFileHost:
		return p.fileHost(c)
	case statePathStart:
		return p.pathStart(c), nil
	case statePath:
		return p.path(c), nil
	case stateOpaquePath:
		return p.opaquePath(c), nil
	case stateQuery:
		return p.queryState(c), nil
	case stateFragment:
		return p.fragmentState(c), nil
	default:
		return stateDone, nil
	}
}

func (p *parser) schemeStart(c rune) (state, error) {
	if isASCIIAlpha(c) {
		p.buf = append(p.buf, byte(toASCIILower(c)))
		return stateScheme, nil
	}
	if p.override {
		return 0, p.fail(InvalidScheme, "scheme must start with an ASCII letter")
	}
	p.pointer--
	return stateNoScheme, nil
}

func (p *parser) scheme(c rune) (state, error) {
	switch {
	case isASCIIAlphanumeric(c) || c == '+' || c == '-' || c == '.':
		p.buf = append(p.buf, byte(toASCIILower(c)))
		return stateScheme, nil

	case c == ':':
		scheme := string(p.buf)
		p.buf = p.buf[:0]
		if p.override {
			return p.replaceScheme(scheme)
		}
		p.u.scheme = scheme
		switch {
		case scheme == "file":
			if p.at(p.pointer+1) != '/' || p.at(p.pointer+2) != '/' {
				p.record(UnexpectedSlashes, "file URL should start with file://")
			}
			return stateFile, nil
		case IsSpecialScheme(scheme) && p.base != nil && p.base.relative && p.base.scheme == scheme:
			return stateSpecialRelativeOrAuthority, nil
		case IsSpecialScheme(scheme):
			return stateSpecialAuthoritySlashes, nil
		case p.at(p.pointer+1) == '/':
			p.pointer++
			return statePathOrAuthority, nil
		default:
			return stateOpaquePath, nil
		}

	case !p.override:
		// Not a scheme after all; start over as a relative reference.
		p.buf = p.buf[:0]
		p.pointer = -1
		return stateNoScheme, nil

	default:
		return 0, p.fail(InvalidScheme, "invalid scheme code point %q", c)
	}
}

func (p *parser) replaceScheme(scheme string) (state, error) {
	if IsSpecialScheme(p.u.scheme) != IsSpecialScheme(scheme) {
		return 0, p.fail(InvalidScheme, "cannot change %q to %q in place", p.u.scheme, scheme)
	}
	p.u.scheme = scheme
	if p.u.hasPort && p.u.port == DefaultPort(scheme) {
		p.u.hasPort, p.u.port = false, 0
	}
	return stateDone, nil
}

func (p *parser) noScheme(c rune) (state, error) {
	switch {
	case p.base == nil:
		return 0, p.fail(InvalidScheme, "missing scheme and no base URL")
	case !p.base.relative && c != '#':
		return 0, p.fail(InvalidScheme, "cannot resolve a relative reference against opaque URL %q", p.base.String())
	case !p.base.relative:
		p.u.scheme = p.base.scheme
		p.schemeData = append(p.schemeData[:0], p.base.schemeData...)
		p.copyBaseQuery()
		p.startFragment()
		return stateFragment, nil
	case p.base.scheme != "file":
		p.pointer--
		return stateRelative, nil
	default:
		p.pointer--
		return stateFile, nil
	}
}

func (p *parser) specialRelativeOrAuthority(c rune) state {
	if c == '/' && p.at(p.pointer+1) == '/' {
		p.pointer++
		return stateSpecialAuthorityIgnoreSlashes
	}
	p.record(UnexpectedSlashes, "expected // after scheme")
	p.pointer--
	return stateRelative
}

func (p *parser) pathOrAuthority(c rune) state {
	if c == '/' {
		return stateAuthority
	}
	// A single slash keeps a non-special URL opaque.
	p.schemeData = append(p.schemeData, '/')
	p.pointer--
	return stateOpaquePath
}

func (p *parser) relative(c rune) state {
	p.u.scheme = p.base.scheme
	p.u.relative = true
	switch {
	case c == '/':
		return stateRelativeSlash
	case p.special() && c == '\\':
		p.record(UnexpectedBackslash, "backslash used as path separator")
		return stateRelativeSlash
	}

	p.copyBaseAuthority()
	p.u.path = slices.Clone(p.base.path)
	p.copyBaseQuery()
	switch c {
	case '?':
		p.startQuery()
		return stateQuery
	case '#':
		p.startFragment()
		return stateFragment
	case eof:
		return stateRelative
	}
	p.clearQuery()
	p.shortenPath()
	p.pointer--
	return statePath
}

func (p *parser) relativeSlash(c rune) state {
	if p.special() && (c == '/' || c == '\\') {
		if c == '\\' {
			p.record(UnexpectedBackslash, "backslash used as path separator")
		}
		return stateSpecialAuthorityIgnoreSlashes
	}
	if c == '/' {
		return stateAuthority
	}
	p.copyBaseAuthority()
	p.pointer--
	return statePath
}

func (p *parser) specialAuthoritySlashes(c rune) state {
	if c == '/' && p.at(p.pointer+1) == '/' {
		p.pointer++
		return stateSpecialAuthorityIgnoreSlashes
	}
	p.record(UnexpectedSlashes, "expected // after scheme")
	p.pointer--
	return stateSpecialAuthorityIgnoreSlashes
}

func (p *parser) specialAuthorityIgnoreSlashes(c rune) state {
	if c != '/' && c != '\\' {
		p.pointer--
		return stateAuthority
	}
	p.record(UnexpectedSlashes, "extra slash before authority")
	return stateSpecialAuthorityIgnoreSlashes
}

func (p *parser) authority(c rune) (state, error) {
	p.u.relative = true
	if c == '@' {
		if p.atSignSeen {
			p.record(InvalidCredentials, "misplaced @ in authority")
			p.buf = append([]byte("%40"), p.buf...)
		}
		p.atSignSeen = true
		p.u.hasUserinfo = true

		runes := []rune(string(p.buf))
		for i, r := range runes {
			if r == ':' && !p.passwordTokenSeen {
				p.passwordTokenSeen = true
				p.u.hasPassword = true
				continue
			}
			if r == '%' && !percent.ValidEscapeAt(runes, i) {
				p.record(InvalidPercentEncoding, "malformed percent escape in userinfo")
			}
			if p.passwordTokenSeen {
				p.password = percent.AppendRune(p.password, r, p.sets.userinfo)
			} else {
				p.username = percent.AppendRune(p.username, r, p.sets.userinfo)
			}
		}
		p.buf = p.buf[:0]
		return stateAuthority, nil
	}

	if c == eof || c == '/' || c == '?' || c == '#' || (p.special() && c == '\\') {
		if p.atSignSeen && len(p.buf) == 0 {
			return 0, p.fail(MissingHost, "credentials without a host")
		}
		p.pointer -= utf8.RuneCount(p.buf) + 1
		p.buf = p.buf[:0]
		return stateHost, nil
	}

	p.buf = utf8.AppendRune(p.buf, c)
	return stateAuthority, nil
}

func (p *parser) host(c rune) (state, error) {
	if c == ':' && !p.insideBrackets {
		if len(p.buf) == 0 {
			return 0, p.fail(MissingHost, "port without a host")
		}
		if err := p.setHost(string(p.buf)); err != nil {
			return 0, err
		}
		p.buf = p.buf[:0]
		return statePort, nil
	}

	if c == eof || c == '/' || c == '?' || c == '#' || (p.special() && c == '\\') {
		p.pointer--
		if len(p.buf) == 0 {
			if p.special() {
				return 0, p.fail(MissingHost, "%s URL requires a host", p.u.scheme)
			}
			return statePathStart, nil
		}
		if err := p.setHost(string(p.buf)); err != nil {
			return 0, err
		}
		p.buf = p.buf[:0]
		return statePathStart, nil
	}

	switch c {
	case '[':
		p.insideBrackets = true
	case ']':
		p.insideBrackets = false
	}
	p.buf = utf8.AppendRune(p.buf, c)
	return stateHost, nil
}

func (p *parser) port(c rune) (state, error) {
	if isASCIIDigit(c) {
		p.buf = append(p.buf, byte(c))
		return statePort, nil
	}
	if c == eof || c == '/' || c == '?' || c == '#' || (p.special() && c == '\\') {
		if len(p.buf) == 0 {
			return 0, p.fail(InvalidPort, "empty port after ':'")
		}
		port, ok := parsePort(p.buf)
		if !ok {
			return 0, p.fail(InvalidPort, "port %s out of range", p.buf)
		}
		if port == DefaultPort(p.u.scheme) {
			p.u.hasPort, p.u.port = false, 0
		} else {
			p.u.hasPort, p.u.port = true, port
		}
		p.buf = p.buf[:0]
		p.pointer--
		return statePathStart, nil
	}
	return 0, p.fail(InvalidPort, "invalid port code point %q", c)
}

func (p *parser) file(c rune) state {
	p.u.scheme = "file"
	p.u.relative = true
	p.u.host = host.Domain("")

	if c == '/' || c == '\\' {
		if c == '\\' {
			p.record(UnexpectedBackslash, "backslash used as path separator")
		}
		return stateFileSlash
	}

	if p.base != nil && p.base.scheme == "file" {
		p.u.host = p.base.host
		p.u.path = slices.Clone(p.base.path)
		p.copyBaseQuery()
		switch c {
		case '?':
			p.startQuery()
			return stateQuery
		case '#':
			p.startFragment()
			return stateFragment
		case eof:
			return stateFile
		}
		p.clearQuery()
		if !startsWithWindowsDriveLetter(p.input[p.pointer:]) {
			p.shortenPath()
		} else {
			p.record(WindowsDriveLetter, "relative reference starts with a drive letter")
			p.u.path = nil
		}
	}
	p.pointer--
	return statePath
}

func (p *parser) fileSlash(c rune) state {
	if c == '/' || c == '\\' {
		if c == '\\' {
			p.record(UnexpectedBackslash, "backslash used as path separator")
		}
		return stateFileHost
	}
	if p.base != nil && p.base.scheme == "file" {
		p.u.host = p.base.host
		if !startsWithWindowsDriveLetter(p.input[p.pointer:]) &&
			len(p.base.path) > 0 && isNormalizedWindowsDriveLetter(p.base.path[0]) {
			p.u.path = append(p.u.path, p.base.path[0])
		}
	}
	p.pointer--
	return statePath
}

func (p *parser) fileHost(c rune) (state, error) {
	if c == eof || c == '/' || c == '\\' || c == '?' || c == '#' {
		p.pointer--
		if isWindowsDriveLetter(string(p.buf)) {
			// The buffer is left for the path state to use as the first
			// segment. A "|" form is reported there.
			if p.buf[1] == ':' {
				p.record(WindowsDriveLetter, "drive letter in file host position")
			}
			return statePath, nil
		}
		if len(p.buf) == 0 {
			p.u.host = host.Domain("")
			return statePathStart, nil
		}
		if err := p.setHost(string(p.buf)); err != nil {
			return 0, err
		}
		if p.u.host == host.Host(host.Domain("localhost")) {
			p.u.host = host.Domain("")
		}
		p.buf = p.buf[:0]
		return statePathStart, nil
	}
	p.buf = utf8.AppendRune(p.buf, c)
	return stateFileHost, nil
}

func (p *parser) pathStart(c rune) state {
	if p.special() {
		if c == '\\' {
			p.record(UnexpectedBackslash, "backslash used as path separator")
		}
		if c != '/' && c != '\\' {
			p.pointer--
		}
		return statePath
	}
	switch c {
	case '?':
		p.startQuery()
		return stateQuery
	case '#':
		p.startFragment()
		return stateFragment
	case eof:
		return statePathStart
	case '/':
		return statePath
	}
	p.pointer--
	return statePath
}

func (p *parser) path(c rune) state {
	backslash := p.special() && c == '\\'
	if c != eof && c != '/' && !backslash && c != '?' && c != '#' {
		if p.isDriveLetterPipe(c) {
			// Reported once as WindowsDriveLetter when the segment ends.
			p.buf = append(p.buf, '|')
			return statePath
		}
		p.checkCodePoint(c)
		p.buf = percent.AppendRune(p.buf, c, p.sets.path)
		return statePath
	}

	if backslash {
		p.record(UnexpectedBackslash, "backslash used as path separator")
	}
	separator := c == '/' || backslash
	segment := string(p.buf)
	p.buf = p.buf[:0]

	switch {
	case isDoubleDotSegment(segment):
		p.shortenPath()
		if !separator {
			p.u.path = append(p.u.path, "")
		}
	case isSingleDotSegment(segment):
		if !separator {
			p.u.path = append(p.u.path, "")
		}
	default:
		if p.u.scheme == "file" && len(p.u.path) == 0 && isWindowsDriveLetter(segment) {
			if segment[1] == '|' {
				p.record(WindowsDriveLetter, "drive letter written with |")
			}
			segment = segment[:1] + ":"
		}
		if segment == "" && separator {
			p.record(InvalidPathSegment, "empty path segment")
		}
		p.u.path = append(p.u.path, segment)
	}

	switch c {
	case '?':
		p.startQuery()
		return stateQuery
	case '#':
		p.startFragment()
		return stateFragment
	}
	return statePath
}

func (p *parser) opaquePath(c rune) state {
	switch c {
	case '?':
		p.startQuery()
		return stateQuery
	case '#':
		p.startFragment()
		return stateFragment
	case eof:
		return stateOpaquePath
	}
	p.checkCodePoint(c)
	p.schemeData = percent.AppendRune(p.schemeData, c, p.sets.opaque)
	return stateOpaquePath
}

func (p *parser) queryState(c rune) state {
	switch c {
	case '#':
		p.startFragment()
		return stateFragment
	case eof:
		return stateQuery
	}
	p.checkCodePoint(c)
	set := p.sets.query
	if p.special() {
		set = p.sets.specialQuery
	}
	p.query = percent.AppendRune(p.query, c, set)
	return stateQuery
}

func (p *parser) fragmentState(c rune) state {
	if c == eof {
		return stateFragment
	}
	p.checkCodePoint(c)
	p.fragment = percent.AppendRune(p.fragment, c, p.sets.fragment)
	return stateFragment
}

func (p *parser) setHost(input string) error {
	h, err := host.ParseWith(input, p.special(), p.settings.Normalizer)
	if err != nil {
		return &ParseError{Kind: hostErrorKind(err), Message: err.Error(), Position: p.pointer, Err: err}
	}
	p.u.host = h
	return nil
}

func (p *parser) copyBaseAuthority() {
	b := p.base
	p.u.hasUserinfo, p.u.hasPassword = b.hasUserinfo, b.hasPassword
	p.username = append(p.username[:0], b.username...)
	p.password = append(p.password[:0], b.password...)
	p.u.host = b.host
	p.u.port, p.u.hasPort = b.port, b.hasPort
}

func (p *parser) copyBaseQuery() {
	p.u.hasQuery = p.base.hasQuery
	p.query = append(p.query[:0], p.base.query...)
}

func (p *parser) startQuery() {
	p.u.hasQuery = true
	p.query = p.query[:0]
}

func (p *parser) clearQuery() {
	p.u.hasQuery = false
	p.query = p.query[:0]
}

func (p *parser) startFragment() {
	p.u.hasFragment = true
	p.fragment = p.fragment[:0]
}

// shortenPath drops the last segment, except a lone file drive letter.
func (p *parser) shortenPath() {
	if p.u.scheme == "file" && len(p.u.path) == 1 && isNormalizedWindowsDriveLetter(p.u.path[0]) {
		return
	}
	if n := len(p.u.path); n > 0 {
		p.u.path = p.u.path[:n-1]
	}
}

func (p *parser) checkCodePoint(c rune) {
	if c == '%' {
		if !percent.ValidEscapeAt(p.input, p.pointer) {
			p.record(InvalidPercentEncoding, "'%%' not followed by two hex digits")
		}
		return
	}
	if !isURLCodePoint(c) {
		p.record(IllegalCharacter, "code point %q is not allowed", c)
	}
}

// isDriveLetterPipe reports whether c is the "|" of a "C|" first segment of
// a file path.
func (p *parser) isDriveLetterPipe(c rune) bool {
	if c != '|' || p.u.scheme != "file" || len(p.u.path) != 0 ||
		len(p.buf) != 1 || !isASCIIAlpha(rune(p.buf[0])) {
		return false
	}
	switch p.at(p.pointer + 1) {
	case eof, '/', '\\', '?', '#':
		return true
	}
	return false
}

func (p *parser) special() bool {
	return IsSpecialScheme(p.u.scheme)
}

func (p *parser) at(i int) rune {
	if i < 0 || i >= len(p.input) {
		return eof
	}
	return p.input[i]
}

func (p *parser) record(kind ErrorKind, format string, args ...any) {
	p.errs = append(p.errs, newParseError(kind, p.pointer, format, args...))
}

func (p *parser) fail(kind ErrorKind, format string, args ...any) error {
	return newParseError(kind, p.pointer, format, args...)
}

func (p *parser) build() *URL {
	u := p.u
	u.schemeData = string(p.schemeData)
	u.username = string(p.username)
	u.password = string(p.password)
	u.query = string(p.query)
	u.fragment = string(p.fragment)

	if !u.relative {
		u.hasUserinfo, u.hasPassword = false, false
		u.username, u.password = "", ""
		u.host = nil
		u.hasPort, u.port = false, 0
		u.path = nil
	} else {
		u.schemeData = ""
	}
	if !u.hasPort {
		u.port = 0
	}
	if len(u.path) == 1 && u.path[0] == "" {
		u.path = nil
	}
	return &u
}

func parsePort(digits []byte) (int, bool) {
	n := 0
	for _, d := range digits {
		n = n*10 + int(d-'0')
		if n > 65535 {
			return 0, false
		}
	}
	return n, true
}

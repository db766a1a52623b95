// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jongio/weburl/host"
)

// ErrorKind classifies a ParseError.
type ErrorKind uint8

const (
	// Fatal kinds abort the parse.
	InvalidScheme ErrorKind = iota + 1
	MissingHost
	InvalidHost
	InvalidIPv4
	InvalidIPv6
	InvalidPort

	// Non-fatal kinds are repaired and recorded.
	InvalidPercentEncoding
	InvalidPathSegment
	IllegalWhitespace
	IllegalCharacter
	UnexpectedSlashes
	UnexpectedBackslash
	InvalidCredentials
	WindowsDriveLetter
)

var kindNames = map[ErrorKind]string{
	InvalidScheme:          "invalid scheme",
	MissingHost:            "missing host",
	InvalidHost:            "invalid host",
	InvalidIPv4:            "invalid IPv4 address",
	InvalidIPv6:            "invalid IPv6 address",
	InvalidPort:            "invalid port",
	InvalidPercentEncoding: "invalid percent encoding",
	InvalidPathSegment:     "invalid path segment",
	IllegalWhitespace:      "illegal whitespace",
	IllegalCharacter:       "illegal character",
	UnexpectedSlashes:      "unexpected slashes",
	UnexpectedBackslash:    "unexpected backslash",
	InvalidCredentials:     "invalid credentials",
	WindowsDriveLetter:     "windows drive letter",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Fatal reports whether errors of this kind abort parsing.
func (k ErrorKind) Fatal() bool {
	return k >= InvalidScheme && k <= InvalidPort
}

var (
	ErrInvalidScheme = errors.New("invalid scheme")
	ErrMissingHost   = errors.New("missing host")
	// Host errors are shared with the host package so errors.Is works
	// regardless of which layer reports them.
	ErrInvalidHost = host.ErrInvalidHost
	ErrInvalidIPv4 = host.ErrInvalidIPv4
	ErrInvalidIPv6 = host.ErrInvalidIPv6
	ErrInvalidPort = errors.New("invalid port")

	// ErrValidation is matched by every non-fatal ParseError.
	ErrValidation = errors.New("validation error")
)

var kindSentinels = map[ErrorKind]error{
	InvalidScheme: ErrInvalidScheme,
	MissingHost:   ErrMissingHost,
	InvalidHost:   ErrInvalidHost,
	InvalidIPv4:   ErrInvalidIPv4,
	InvalidIPv6:   ErrInvalidIPv6,
	InvalidPort:   ErrInvalidPort,
}

// ParseError describes one deviation found while parsing. Position is the
// code point offset into the preprocessed input, or -1 if unknown.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Position int
	Err      error
}

func newParseError(kind ErrorKind, pos int, format string, args ...any) *ParseError {
	err := kindSentinels[kind]
	if err == nil {
		err = ErrValidation
	}
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...), Position: pos, Err: err}
}

func (e *ParseError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Fatal reports whether the error aborted the parse.
func (e *ParseError) Fatal() bool {
	return e.Kind.Fatal()
}

// ValidationErrors is returned in strict mode when a parse recorded one or
// more non-fatal errors.
type ValidationErrors []*ParseError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// hostErrorKind maps a host package error to the matching kind.
func hostErrorKind(err error) ErrorKind {
	switch {
	case errors.Is(err, host.ErrInvalidIPv4):
		return InvalidIPv4
	case errors.Is(err, host.ErrInvalidIPv6):
		return InvalidIPv6
	default:
		return InvalidHost
	}
}

package urlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jongio/weburl/host"
	"github.com/jongio/weburl/weburl"
)

// MaxURLLength is the longest input Validate accepts.
const MaxURLLength = 2048

// Inputs are parsed with IDNA so internationalized domains validate as the
// punycode a browser would look up.
var validation = &weburl.Settings{Normalizer: host.IDNA}

// Validate reports whether rawURL is an http or https URL with a host.
// Surrounding whitespace is ignored.
func Validate(rawURL string) error {
	_, err := parseHTTP(rawURL)
	return err
}

// ValidateHTTPSOnly is Validate restricted to https, except that plain http
// is allowed when the host is loopback.
func ValidateHTTPSOnly(rawURL string) error {
	u, err := parseHTTP(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme() != "https" && !IsLoopback(u.Host()) {
		return fmt.Errorf("url must use https:// (http:// only allowed for localhost)")
	}
	return nil
}

// Parse is Validate returning the parsed URL.
func Parse(rawURL string) (*weburl.URL, error) {
	return parseHTTP(rawURL)
}

// NormalizeScheme prefixes rawURL with defaultScheme and "://" unless it
// already parses as an http or https URL.
//
//	urlutil.NormalizeScheme("example.com", "https") // "https://example.com"
func NormalizeScheme(rawURL, defaultScheme string) string {
	rawURL = strings.TrimSpace(rawURL)
	if u, err := weburl.Parse(rawURL); err == nil && isHTTP(u.Scheme()) {
		return rawURL
	}
	return defaultScheme + "://" + rawURL
}

// IsLoopback reports whether h is localhost, falls in 127.0.0.0/8, or is ::1.
func IsLoopback(h host.Host) bool {
	switch h := h.(type) {
	case host.Domain:
		return h == "localhost"
	case host.IPv4Address:
		return h.Octets()[0] == 127
	case host.IPv6Address:
		return h == host.IPv6Address{7: 1}
	}
	return false
}

func isHTTP(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

func parseHTTP(rawURL string) (*weburl.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	switch {
	case rawURL == "":
		return nil, fmt.Errorf("url cannot be empty")
	case len(rawURL) > MaxURLLength:
		return nil, fmt.Errorf("url exceeds maximum length of %d characters", MaxURLLength)
	}

	u, err := validation.Parse(rawURL, nil)
	switch {
	case errors.Is(err, weburl.ErrInvalidScheme):
		return nil, fmt.Errorf("url must use http:// or https://")
	case errors.Is(err, weburl.ErrMissingHost):
		return nil, fmt.Errorf("url missing host/domain")
	case err != nil:
		return nil, fmt.Errorf("invalid URL format: %w", err)
	case !isHTTP(u.Scheme()):
		return nil, fmt.Errorf("url must use http:// or https://, got: %s", u.Scheme())
	}
	return u, nil
}

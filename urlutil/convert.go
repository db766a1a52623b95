package urlutil

import (
	"errors"
	"fmt"
	neturl "net/url"

	"github.com/jongio/weburl/weburl"
)

// ErrLossyConversion is returned when net/url would not reproduce the
// canonical serialization of a URL.
var ErrLossyConversion = errors.New("url does not survive conversion")

// ToNetURL converts u to a net/url URL. The conversion succeeds only when
// net/url reproduces u's serialization exactly, which holds for URLs parsed
// with weburl.RFC2396.
func ToNetURL(u *weburl.URL) (*neturl.URL, error) {
	s := u.String()
	nu, err := neturl.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("converting %q: %w", s, err)
	}
	if got := nu.String(); got != s {
		return nil, fmt.Errorf("%w: %q became %q", ErrLossyConversion, s, got)
	}
	return nu, nil
}

// FromNetURL parses the serialization of nu. nu must be absolute.
func FromNetURL(nu *neturl.URL) (*weburl.URL, error) {
	u, err := weburl.Parse(nu.String())
	if err != nil {
		return nil, fmt.Errorf("converting %q: %w", nu.String(), err)
	}
	return u, nil
}

// MustFromNetURL is FromNetURL for URLs known to be absolute and valid. It
// panics otherwise.
func MustFromNetURL(nu *neturl.URL) *weburl.URL {
	u, err := FromNetURL(nu)
	if err != nil {
		panic(err)
	}
	return u
}

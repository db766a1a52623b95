// Package urlutil holds helpers built on the weburl parser: http(s) input
// validation, domain checks, a flattened description of a parsed URL for
// output, and conversion to and from net/url.
//
// Validation parses with host.IDNA, so the inputs accepted are the ones a
// browser would navigate to, with internationalized domains in punycode:
//
//	if err := urlutil.ValidateHTTPSOnly(endpoint); err != nil {
//		return fmt.Errorf("endpoint: %w", err)
//	}
//
// ValidateHTTPSOnly still lets plain http through for loopback hosts.
//
// ToNetURL hands a parsed URL to APIs that take *url.URL. It fails with
// ErrLossyConversion when net/url would re-escape the serialization, which
// does not happen for URLs parsed with weburl.RFC2396:
//
//	s := &weburl.Settings{Standard: weburl.RFC2396}
//	u, _ := s.Parse(raw, nil)
//	nu, err := urlutil.ToNetURL(u)
package urlutil

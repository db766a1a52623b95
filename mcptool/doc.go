// Package mcptool serves the weburl parser as Model Context Protocol tools.
//
// Three tools are registered:
//   - parse_url: parse a URL, optionally against a base
//   - resolve_url: resolve a reference against a base
//   - with_scheme: replace a URL's scheme
//
// Each returns the URL components as JSON, plus any validation errors the
// parser repaired. Failures are reported as tool errors, never as protocol
// errors. All tools share one token-bucket rate limiter
// (golang.org/x/time/rate).
//
//	srv := mcptool.NewServer(mcptool.Options{Settings: settings})
//	err := srv.Serve(ctx, os.Stdin, os.Stdout)
package mcptool

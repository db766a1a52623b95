// Package cli implements the weburl command tree.
//
// Global flags (--standard, --strict, --idna, --output) override the values
// loaded by package config from the YAML file, the dotenv file and WEBURL_*
// environment variables. Only flags that were set on the command line take
// precedence.
//
// Commands:
//   - parse: parse one URL, optionally against --base
//   - resolve: resolve a reference against a base
//   - with-scheme: replace a URL's scheme
//   - batch: canonicalize one URL per line, optionally writing Prometheus metrics
//   - open: canonicalize an http(s) URL and open it in the browser
//   - mcp: serve the parser as MCP tools over stdio
//   - version: print build information
package cli

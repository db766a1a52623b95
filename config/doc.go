// Package config loads weburl CLI settings.
//
// Values are layered, later sources winning:
//   - built-in defaults (whatwg standard, text output)
//   - a YAML file passed with --config
//   - a dotenv file (.env by default)
//   - WEBURL_STANDARD, WEBURL_STRICT, WEBURL_IDNA and WEBURL_OUTPUT
//
// Command-line flags are applied on top by the cli package.
//
//	cfg, err := config.Load(config.LoadOptions{File: "weburl.yaml"})
//	if err != nil {
//		return err
//	}
//	settings, err := cfg.Settings(nil)
package config

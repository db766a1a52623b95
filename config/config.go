package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jongio/weburl/host"
	"github.com/jongio/weburl/weburl"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// DefaultEnvFile is read when LoadOptions.EnvFile is empty. A missing
// default file is not an error.
const DefaultEnvFile = ".env"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds CLI settings.
type Config struct {
	Standard string `yaml:"standard" json:"standard" env:"WEBURL_STANDARD"`
	Strict   bool   `yaml:"strict" json:"strict" env:"WEBURL_STRICT"`
	IDNA     bool   `yaml:"idna" json:"idna" env:"WEBURL_IDNA"`
	Output   string `yaml:"output" json:"output" env:"WEBURL_OUTPUT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Standard: weburl.WHATWG.String(), Output: OutputText}
}

// LoadOptions selects the files Load reads.
type LoadOptions struct {
	// File is an optional YAML config file. It must exist when set.
	File string
	// EnvFile is a dotenv file; DefaultEnvFile when empty.
	EnvFile string
	// Environ overrides os.Environ, for tests.
	Environ []string
}

// Load builds a Config from defaults, the YAML file, the dotenv file and
// the environment, in increasing order of precedence. Variables already in
// the environment win over the dotenv file. The result is not validated;
// callers apply their own overrides first and then call Validate.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", opts.File, err)
		}
	}

	environ, err := mergedEnvironment(opts)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

func mergedEnvironment(opts LoadOptions) (map[string]string, error) {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	merged, err := godotenv.Read(envFile)
	switch {
	case errors.Is(err, fs.ErrNotExist) && opts.EnvFile == "":
		merged = map[string]string{}
	case err != nil:
		return nil, fmt.Errorf("reading env file: %w", err)
	}

	for k, v := range env.ToMap(environ) {
		merged[k] = v
	}
	return merged, nil
}

// Validate checks that every field holds a known value.
func (c *Config) Validate() error {
	if _, err := weburl.ParseStandard(c.Standard); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: unknown output format %q (expected text, json or yaml)", ErrInvalidConfig, c.Output)
	}
	return nil
}

// Settings builds parser settings from the configuration. The observer may
// be nil.
func (c *Config) Settings(observer weburl.Observer) (*weburl.Settings, error) {
	standard, err := weburl.ParseStandard(c.Standard)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	s := &weburl.Settings{
		Standard: standard,
		Strict:   c.Strict,
		Observer: observer,
	}
	if c.IDNA {
		s.Normalizer = host.IDNA
	}
	return s, nil
}

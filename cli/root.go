package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jongio/weburl/cliout"
	"github.com/jongio/weburl/config"
	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/version"
	"github.com/jongio/weburl/weburl"
)

// rootOptions holds global flags and the configuration they resolve to.
type rootOptions struct {
	configFile string
	envFile    string
	standard   string
	output     string
	strict     bool
	idna       bool
	debug      bool

	cfg *config.Config
}

// NewRootCommand builds the weburl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "weburl",
		Short: "Parse and canonicalize URLs per the WHATWG URL Standard",
		Long: `weburl parses URLs the way browsers do: it repairs malformed input where
the standard allows it, resolves relative references against a base, and
prints the canonical serialization and components.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file (default .env)")
	flags.StringVar(&opts.standard, "standard", "", "Encoding rules: whatwg or rfc2396")
	flags.StringVarP(&opts.output, "output", "o", "", "Output format: text, json or yaml")
	flags.BoolVar(&opts.strict, "strict", false, "Reject input that needed any repair")
	flags.BoolVar(&opts.idna, "idna", false, "Convert internationalized domains to punycode")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		newParseCommand(opts),
		newResolveCommand(opts),
		newWithSchemeCommand(opts),
		newBatchCommand(opts),
		newOpenCommand(opts),
		newMCPCommand(opts),
		version.NewCommand(version.New("weburl"), &opts.output),
	)
	return cmd
}

// resolve loads the configuration and applies flags that were set on the
// command line on top of it.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	logutil.Configure(logutil.Options{Writer: cmd.ErrOrStderr(), Debug: o.debug})

	cfg, err := config.Load(config.LoadOptions{File: o.configFile, EnvFile: o.envFile})
	if err != nil {
		return err
	}

	o.applyFlags(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.output = cfg.Output
	logutil.NewLogger("cli").Debug("configuration resolved",
		"standard", cfg.Standard, "strict", cfg.Strict, "idna", cfg.IDNA, "output", cfg.Output)
	return nil
}

// applyFlags copies flags that were set on the command line into cfg.
func (o *rootOptions) applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "standard":
			cfg.Standard = o.standard
		case "strict":
			cfg.Strict = o.strict
		case "idna":
			cfg.IDNA = o.idna
		case "output":
			cfg.Output = o.output
		}
	})
}

func (o *rootOptions) settings(observer weburl.Observer) (*weburl.Settings, error) {
	s, err := o.cfg.Settings(observer)
	if err != nil {
		return nil, fmt.Errorf("building parser settings: %w", err)
	}
	return s, nil
}

func (o *rootOptions) printer(cmd *cobra.Command) (*cliout.Printer, error) {
	f, err := cliout.ParseFormat(o.cfg.Output)
	if err != nil {
		return nil, err
	}
	return cliout.NewPrinter(cmd.OutOrStdout(), f), nil
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/weburl/cliout"
	"github.com/jongio/weburl/urlutil"
	"github.com/jongio/weburl/weburl"
)

// result is what parse, resolve and with-scheme print.
type result struct {
	urlutil.Components `yaml:",inline"`
	Issues             []urlutil.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func newParseCommand(opts *rootOptions) *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "parse <url>",
		Short: "Parse a URL and print its components",
		Example: `  weburl parse 'HTTP://Example.COM/a/../b?q#f'
  weburl parse ../c --base http://example.com/a/b/
  weburl parse -o json 'http://[::1]:8080/'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings(nil)
			if err != nil {
				return err
			}
			var baseURL *weburl.URL
			if base != "" {
				if baseURL, err = settings.Parse(base, nil); err != nil {
					return fmt.Errorf("invalid base URL: %w", err)
				}
			}
			return runParse(cmd, opts, settings, args[0], baseURL)
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Base URL for relative references")
	return cmd
}

func newResolveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <base> <ref>",
		Short:   "Resolve a reference against a base URL",
		Example: `  weburl resolve 'http://a/b/c/d;p?q' '../g'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings(nil)
			if err != nil {
				return err
			}
			base, err := settings.Parse(args[0], nil)
			if err != nil {
				return fmt.Errorf("invalid base URL: %w", err)
			}
			return runParse(cmd, opts, settings, args[1], base)
		},
	}
}

func newWithSchemeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "with-scheme <url> <scheme>",
		Short:   "Replace the scheme of a URL",
		Example: `  weburl with-scheme http://example.com:443/ https`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings(nil)
			if err != nil {
				return err
			}
			u, err := settings.Parse(args[0], nil)
			if err != nil {
				return err
			}
			out, err := settings.WithScheme(u, args[1])
			if err != nil {
				return err
			}
			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}
			return printResult(p, result{Components: urlutil.Describe(out)})
		},
	}
}

func runParse(cmd *cobra.Command, opts *rootOptions, settings *weburl.Settings, input string, base *weburl.URL) error {
	u, errs, err := settings.ParseWithErrors(input, base)
	if err == nil && settings.Strict && len(errs) > 0 {
		err = weburl.ValidationErrors(errs)
	}
	if err != nil {
		return err
	}

	p, err := opts.printer(cmd)
	if err != nil {
		return err
	}
	return printResult(p, result{Components: urlutil.Describe(u), Issues: urlutil.Issues(errs)})
}

func printResult(p *cliout.Printer, r result) error {
	return p.Print(r, func() {
		p.Plain("%s", r.Href)
		p.Label("Scheme", r.Scheme)
		if r.Opaque {
			p.Label("Data", r.SchemeData)
		}
		p.Label("Username", r.Username)
		if r.Password != nil {
			p.Label("Password", *r.Password)
		}
		if r.Host != "" {
			p.Label("Host", fmt.Sprintf("%s (%s)", r.Host, r.HostKind))
		}
		if r.Port != nil {
			p.Label("Port", strconv.Itoa(*r.Port))
		}
		if len(r.Segments) > 0 {
			p.Label("Path", strings.Join(r.Segments, " | "))
		}
		if r.Query != nil {
			p.Label("Query", *r.Query)
		}
		if r.Fragment != nil {
			p.Label("Fragment", *r.Fragment)
		}
		for _, issue := range r.Issues {
			p.ItemWarning("%s: %s", issue.Kind, issue.Message)
		}
	})
}

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/weburl/browser"
)

func newOpenCommand(opts *rootOptions) *cobra.Command {
	var (
		target       string
		dryRun       bool
		requireHTTPS bool
		timeout      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "open <url>",
		Short: "Canonicalize an http(s) URL and open it in the browser",
		Example: `  weburl open 'HTTPS://Example.com/a/./b'
  weburl open --dry-run http://localhost:3000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := browser.ParseTarget(target)
			if err != nil {
				return err
			}
			if dryRun {
				t = browser.TargetNone
			}

			canonical, err := browser.Launch(browser.LaunchOptions{
				URL:          args[0],
				Target:       t,
				Timeout:      timeout,
				Wait:         true,
				RequireHTTPS: requireHTTPS,
			})
			if err != nil {
				return err
			}

			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}
			opened := t.Enabled()
			return p.Print(map[string]any{"href": canonical, "opened": opened}, func() {
				if opened {
					p.Success("Opened %s in %s", canonical, t.DisplayName())
					return
				}
				p.Plain("%s", canonical)
			})
		},
	}
	cmd.Flags().StringVar(&target, "target", string(browser.TargetDefault), "Browser target: "+browser.TargetNames())
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the canonical URL without opening it")
	cmd.Flags().BoolVar(&requireHTTPS, "require-https", false, "Reject plain http unless the host is loopback")
	cmd.Flags().DurationVar(&timeout, "timeout", browser.DefaultTimeout, "How long to wait for the browser to launch")
	return cmd
}

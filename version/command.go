package version

import (
	"github.com/spf13/cobra"

	"github.com/jongio/weburl/cliout"
)

// NewCommand returns the "version" subcommand. format points at the root
// command's --output flag value and may be nil for text output.
func NewCommand(info *Info, format *string) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print " + info.Name + " build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var name string
			if format != nil {
				name = *format
			}
			f, err := cliout.ParseFormat(name)
			if err != nil {
				return err
			}
			p := cliout.NewPrinter(cmd.OutOrStdout(), f)
			if quiet && !p.IsStructured() {
				p.Plain("%s", info.Version)
				return nil
			}
			return p.Print(info, func() { printInfo(p, info) })
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the version number")
	return cmd
}

func printInfo(p *cliout.Printer, info *Info) {
	p.Plain("%s", info.Name)
	for _, row := range [][2]string{
		{"Version", info.Version},
		{"Build Date", info.BuildDate},
		{"Git Commit", info.GitCommit},
		{"Go", info.GoVersion},
	} {
		p.Label(row[0], row[1])
	}
}

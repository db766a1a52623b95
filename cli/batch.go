package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/weburl/cliout"
	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/metrics"
	"github.com/jongio/weburl/urlutil"
	"github.com/jongio/weburl/weburl"
)

// batchEntry is the outcome for one input line.
type batchEntry struct {
	Line   int             `json:"line" yaml:"line"`
	Input  string          `json:"input" yaml:"input"`
	Href   string          `json:"href,omitempty" yaml:"href,omitempty"`
	Error  string          `json:"error,omitempty" yaml:"error,omitempty"`
	Issues []urlutil.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

type batchOptions struct {
	base        string
	metricsFile string
}

func newBatchCommand(opts *rootOptions) *cobra.Command {
	bo := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Canonicalize one URL per line from a file or stdin",
		Long: `Parses every non-empty line that does not start with '#' and prints the
canonical form or the error. Exits with an error when any line fails.`,
		Example: `  weburl batch urls.txt --metrics-file weburl.prom
  cat urls.txt | weburl batch -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening input: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runBatch(cmd, opts, bo, in)
		},
	}
	cmd.Flags().StringVar(&bo.base, "base", "", "Base URL for relative lines")
	cmd.Flags().StringVar(&bo.metricsFile, "metrics-file", "", "Write Prometheus text metrics to this file")
	return cmd
}

func runBatch(cmd *cobra.Command, opts *rootOptions, bo *batchOptions, in io.Reader) error {
	log := logutil.NewLogger("cli").WithOperation("batch")
	recorder := metrics.NewRecorder()
	settings, err := opts.settings(recorder)
	if err != nil {
		return err
	}

	var base *weburl.URL
	if bo.base != "" {
		// The base is parsed without the recorder so it is not counted.
		baseSettings := *settings
		baseSettings.Observer = nil
		if base, err = baseSettings.Parse(bo.base, nil); err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
	}

	var entries []batchEntry
	failed := 0
	scanner := bufio.NewScanner(in)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		entry := batchEntry{Line: n, Input: line}
		u, errs, err := settings.ParseWithErrors(line, base)
		if err == nil && settings.Strict && len(errs) > 0 {
			err = weburl.ValidationErrors(errs)
		}
		if err != nil {
			entry.Error = err.Error()
			failed++
		} else {
			entry.Href = u.String()
			entry.Issues = urlutil.Issues(errs)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	log.Debug("batch complete", "total", len(entries), "failed", failed)

	if bo.metricsFile != "" {
		if err := recorder.WriteTextfile(bo.metricsFile); err != nil {
			return err
		}
	}

	p, err := opts.printer(cmd)
	if err != nil {
		return err
	}
	if err := printBatch(p, entries); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed to parse", failed, len(entries))
	}
	return nil
}

func printBatch(p *cliout.Printer, entries []batchEntry) error {
	if entries == nil {
		entries = []batchEntry{}
	}
	return p.Print(entries, func() {
		rows := make([]cliout.TableRow, 0, len(entries))
		for _, e := range entries {
			row := cliout.TableRow{"Line": strconv.Itoa(e.Line), "Input": e.Input, "Result": e.Href}
			if e.Error != "" {
				row["Result"] = "error: " + e.Error
			}
			if len(e.Issues) > 0 {
				row["Repairs"] = strconv.Itoa(len(e.Issues))
			}
			rows = append(rows, row)
		}
		p.Table([]string{"Line", "Input", "Result", "Repairs"}, rows)
	})
}

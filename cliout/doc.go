// Package cliout provides structured output formatting for the weburl CLI.
//
// A Printer renders results as human-readable text, JSON or YAML. Text output
// uses ANSI colors only when writing to a terminal (detected with
// golang.org/x/term) and NO_COLOR is unset, and falls back to ASCII symbols
// on consoles that cannot display Unicode.
//
//	p := cliout.NewPrinter(os.Stdout, cliout.FormatJSON)
//	err := p.Print(result, func() {
//		p.Label("Scheme", u.Scheme())
//		p.Label("Host", u.HostString())
//	})
package cliout

package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	// FormatText is the human-readable format.
	FormatText Format = "text"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols for modern CLI output
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolArrow   = "→"
)

// ASCII fallback symbols for terminals that don't support Unicode
const (
	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIArrow   = "->"
)

// ParseFormat parses "text", "json" or "yaml". An empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text", "default":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (valid options: text, json, yaml)", s)
	}
}

// Printer writes command results in one format. Color is only used for the
// text format.
type Printer struct {
	w       io.Writer
	format  Format
	color   bool
	unicode bool
}

// NewPrinter creates a Printer. Color is enabled when w is a terminal and
// NO_COLOR is unset.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		w:       w,
		format:  format,
		color:   isTerminal(w) && os.Getenv("NO_COLOR") == "",
		unicode: detectUnicodeSupport(),
	}
}

// WithColor returns a copy of p with color forced on or off.
func (p *Printer) WithColor(on bool) *Printer {
	c := *p
	c.color = on
	return &c
}

// Format returns the printer's format.
func (p *Printer) Format() Format { return p.format }

// IsStructured reports whether output is JSON or YAML.
func (p *Printer) IsStructured() bool { return p.format != FormatText }

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// detectUnicodeSupport checks if the terminal can display Unicode properly
func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	// Windows Terminal, VS Code and PowerShell hosts render Unicode; the
	// classic console does not.
	return os.Getenv("WT_SESSION") != "" ||
		os.Getenv("TERM_PROGRAM") == "vscode" ||
		os.Getenv("PSModulePath") != "" ||
		os.Getenv("TERM") != ""
}

func (p *Printer) icon(unicode, ascii string) string {
	if p.unicode {
		return unicode
	}
	return ascii
}

func (p *Printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + Reset
}

// Print outputs data in the configured format. For text, text is called
// instead of marshaling data.
func (p *Printer) Print(data any, text func()) error {
	switch p.format {
	case FormatJSON:
		encoder := json.NewEncoder(p.w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatYAML:
		encoder := yaml.NewEncoder(p.w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return err
		}
		return encoder.Close()
	default:
		text()
		return nil
	}
}

// Plain prints plain text without any formatting.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Success prints a success message with green checkmark
func (p *Printer) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.w, "%s %s\n", p.paint(BrightGreen, p.icon(SymbolCheck, ASCIICheck)), msg)
}

// Error prints an error message with red X
func (p *Printer) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.w, "%s %s\n", p.paint(BrightRed, p.icon(SymbolCross, ASCIICross)), msg)
}

// Warning prints a warning message with yellow triangle
func (p *Printer) Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.w, "%s  %s\n", p.paint(BrightYellow, p.icon(SymbolWarning, ASCIIWarning)), msg)
}

// ItemWarning prints an indented warning item
func (p *Printer) ItemWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.w, "   %s  %s\n", p.paint(Yellow, p.icon(SymbolWarning, ASCIIWarning)), msg)
}

// Arrow prints "from -> to".
func (p *Printer) Arrow(from, to string) {
	fmt.Fprintf(p.w, "%s %s %s\n", from, p.paint(Cyan, p.icon(SymbolArrow, ASCIIArrow)), p.paint(BrightBlue, to))
}

// Label prints a label and value pair. Empty values are skipped.
func (p *Printer) Label(label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(p.w, "   %s %s\n", p.paint(Dim, fmt.Sprintf("%-12s", label+":")), value)
}

// TableRow represents a row in a table as a map of column header to value.
type TableRow map[string]string

// Table prints a simple table with the given headers and rows.
func (p *Printer) Table(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make(map[string]int)
	for _, header := range headers {
		widths[header] = len(header)
	}
	for _, row := range rows {
		for _, header := range headers {
			widths[header] = max(widths[header], len(row[header]))
		}
	}

	var b strings.Builder
	b.WriteString("   ")
	for _, header := range headers {
		b.WriteString(p.paint(Bold, fmt.Sprintf("%-*s", widths[header], header)))
		b.WriteString("  ")
	}
	fmt.Fprintln(p.w, strings.TrimRight(b.String(), " "))

	b.Reset()
	b.WriteString("   ")
	for _, header := range headers {
		b.WriteString(strings.Repeat("-", widths[header]) + "  ")
	}
	fmt.Fprintln(p.w, strings.TrimRight(b.String(), " "))

	for _, row := range rows {
		b.Reset()
		b.WriteString("   ")
		for _, header := range headers {
			fmt.Fprintf(&b, "%-*s  ", widths[header], row[header])
		}
		fmt.Fprintln(p.w, strings.TrimRight(b.String(), " "))
	}
}

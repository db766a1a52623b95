package cliout

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	Scheme string `json:"scheme" yaml:"scheme"`
	Port   int    `json:"port" yaml:"port"`
}

func newTestPrinter(format Format) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, format)
	p.unicode = true
	return p, &buf
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "text", want: FormatText},
		{in: "default", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFormat(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewPrinterNoColorForBuffer(t *testing.T) {
	p, _ := newTestPrinter(FormatText)
	if p.color {
		t.Error("color should be disabled for a non-terminal writer")
	}
	if p.IsStructured() {
		t.Error("text printer should not be structured")
	}
}

func TestPrintJSON(t *testing.T) {
	p, buf := newTestPrinter(FormatJSON)
	called := false
	if err := p.Print(sample{Scheme: "https", Port: 443}, func() { called = true }); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if called {
		t.Error("text formatter should not run for JSON")
	}

	var got sample
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Scheme != "https" || got.Port != 443 {
		t.Errorf("unexpected JSON payload: %+v", got)
	}
	if !strings.Contains(buf.String(), "\n  \"scheme\"") {
		t.Errorf("JSON should be indented, got:\n%s", buf.String())
	}
}

func TestPrintYAML(t *testing.T) {
	p, buf := newTestPrinter(FormatYAML)
	if err := p.Print(sample{Scheme: "ws", Port: 80}, func() {}); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	var got sample
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if got.Scheme != "ws" || got.Port != 80 {
		t.Errorf("unexpected YAML payload: %+v", got)
	}
}

func TestPrintText(t *testing.T) {
	p, buf := newTestPrinter(FormatText)
	err := p.Print(sample{}, func() { p.Plain("hello %s", "world") })
	if err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if buf.String() != "hello world\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestStatusMessages(t *testing.T) {
	tests := []struct {
		name string
		fn   func(p *Printer)
		want string
	}{
		{name: "success", fn: func(p *Printer) { p.Success("done %d", 1) }, want: SymbolCheck + " done 1\n"},
		{name: "error", fn: func(p *Printer) { p.Error("bad") }, want: SymbolCross + " bad\n"},
		{name: "warning", fn: func(p *Printer) { p.Warning("careful") }, want: SymbolWarning + "  careful\n"},
		{name: "item warning", fn: func(p *Printer) { p.ItemWarning("tab removed") }, want: "   " + SymbolWarning + "  tab removed\n"},
		{name: "arrow", fn: func(p *Printer) { p.Arrow("a", "b") }, want: "a " + SymbolArrow + " b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, buf := newTestPrinter(FormatText)
			tt.fn(p)
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestASCIIFallback(t *testing.T) {
	p, buf := newTestPrinter(FormatText)
	p.unicode = false
	p.Success("ok")
	if buf.String() != ASCIICheck+" ok\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestWithColor(t *testing.T) {
	p, buf := newTestPrinter(FormatText)
	colored := p.WithColor(true)
	colored.Error("x")
	if !strings.Contains(buf.String(), BrightRed) || !strings.Contains(buf.String(), Reset) {
		t.Errorf("expected ANSI codes, got %q", buf.String())
	}
	if p.color {
		t.Error("WithColor should not modify the original printer")
	}
}

func TestLabel(t *testing.T) {
	p, buf := newTestPrinter(FormatText)
	p.Label("Scheme", "https")
	p.Label("Query", "")
	want := "   Scheme:      https\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestTable(t *testing.T) {
	p, buf := newTestPrinter(FormatText)
	p.Table([]string{"Input", "Result"}, []TableRow{
		{"Input": "HTTP://A", "Result": "http://a/"},
		{"Input": "x", "Result": "error"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "   Input     Result" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "   --------  ---------" {
		t.Errorf("separator = %q", lines[1])
	}
	if lines[2] != "   HTTP://A  http://a/" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[3] != "   x         error" {
		t.Errorf("row = %q", lines[3])
	}
}

func TestTableEmpty(t *testing.T) {
	p, buf := newTestPrinter(FormatText)
	p.Table([]string{"A"}, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

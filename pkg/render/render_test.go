package render

import (
	"context"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"dot", FormatDOT, false},
		{"svg", FormatSVG, false},
		{"png", FormatPNG, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatExt(t *testing.T) {
	if got := FormatSVG.Ext(); got != ".svg" {
		t.Errorf("Ext() = %q, want .svg", got)
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	dot := "digraph G { a -> b; }\n"
	out, err := Render(context.Background(), dot, FormatDOT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != dot {
		t.Errorf("DOT passthrough altered input: %q", out)
	}
}

func TestSVG(t *testing.T) {
	svg, err := SVG(context.Background(), "digraph G { a -> b; }")
	if err != nil {
		t.Fatalf("SVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") {
		t.Errorf("output is not SVG:\n%.200s", s)
	}
	if !strings.Contains(s, `viewBox="0 0 `) {
		t.Errorf("viewBox not normalized:\n%.200s", s)
	}
}

func TestSVGInvalidDOT(t *testing.T) {
	if _, err := SVG(context.Background(), "this is not dot"); err == nil {
		t.Error("invalid DOT should fail")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="4pt" viewBox="0.00 0.00 120.75 60.25" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120.75 60.25" width="121" height="60">`
	if out != want {
		t.Errorf("normalizeViewBox = %q, want %q", out, want)
	}

	// Inputs without a viewBox pass through untouched.
	plain := []byte("<svg>")
	if got := string(normalizeViewBox(plain)); got != "<svg>" {
		t.Errorf("passthrough = %q", got)
	}
}

// Package render rasterizes DOT graphs through Graphviz.
//
// The depgraph package produces plain DOT text; this package turns it into
// the SVG and PNG artifacts embedded in generated documentation pages.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// Format is an output artifact format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDOT, FormatSVG, FormatPNG:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want dot, svg or png)", s)
	}
}

// Ext returns the file extension for the format, dot included.
func (f Format) Ext() string { return "." + string(f) }

// SVG renders a DOT graph to SVG. The viewBox of the result is normalized to
// a zero origin so the SVG scales cleanly when embedded in HTML pages.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(ctx, dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// PNG renders a DOT graph to PNG.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(ctx, dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render produces the artifact for the given format. DOT is passed through
// unchanged.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return SVG(ctx, dot)
	case FormatPNG:
		return PNG(ctx, dot)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format, buf *bytes.Buffer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

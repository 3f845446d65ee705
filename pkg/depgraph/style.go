package depgraph

import "strings"

// levelPalette is cycled by directory nesting level, giving every depth a
// consistent fill color across all graphs of a run.
var levelPalette = [...]string{
	"#eeeeff", "#ddddee", "#ccccdd", "#bbbbcc",
	"#aaaabb", "#9999aa", "#888899", "#777788",
}

func backgroundColor(level int) string {
	return levelPalette[level%len(levelPalette)]
}

// borderColor encodes the truncation and orphan states; these colors are the
// reader-facing legend for why a directory is shown incompletely.
func borderColor(p *Property) string {
	switch {
	case p.IsTruncated && p.IsOrphaned:
		return "darkorchid3"
	case p.IsTruncated:
		return "red"
	case p.IsOrphaned:
		return "grey75"
	default:
		return "black"
	}
}

// borderStyle composes the DOT style attribute from the draw property.
// Peripheral directories lose their fill so they read as context, not
// content; the origin is bold and incomplete directories are dashed.
func borderStyle(p *Property) string {
	var parts []string
	if !p.IsPeripheral {
		parts = append(parts, "filled")
	}
	if p.IsOriginal {
		parts = append(parts, "bold")
	}
	if p.IsIncomplete {
		parts = append(parts, "dashed")
	}
	if len(parts) == 0 {
		parts = append(parts, "solid")
	}
	return strings.Join(parts, ",")
}

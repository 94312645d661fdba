package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// namedColors maps common color names to ANSI palette indices.
var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
	"orange":  "208",
	"pink":    "218",
	"purple":  "93",
}

// Color converts a highlight color ("yellow", "#ffcc00", "214") to a
// lipgloss color.
func Color(name string) lipgloss.Color {
	if c, ok := namedColors[strings.ToLower(name)]; ok {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(name)
}

// Paint renders text with the layer's markers as background colors. Where
// markers overlap the highest priority wins.
func Paint(text string, l *Layer) string {
	if len(l.markers) == 0 {
		return text
	}

	var b strings.Builder
	runStart := 0
	runColor := ""
	flush := func(end int) {
		if end <= runStart {
			return
		}
		seg := text[runStart:end]
		if runColor == "" {
			b.WriteString(seg)
			return
		}
		style := lipgloss.NewStyle().Background(Color(runColor)).Foreground(lipgloss.Color("0"))
		// Style line by line so newlines are never inside an escape sequence.
		lines := strings.Split(seg, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}

	colors := l.colors(len(text))
	for i, color := range colors {
		if color != runColor {
			flush(i)
			runStart = i
			runColor = color
		}
	}
	flush(len(text))
	return b.String()
}

// colors returns the winning marker color of every offset below n, "" where
// no marker applies. It agrees with the first marker MarkersAt reports.
func (l *Layer) colors(n int) []string {
	ms := l.Markers()
	sortByPriority(ms)
	out := make([]string, n)
	set := make([]bool, n)
	for _, m := range ms {
		for i := max(m.Range.Start, 0); i < min(m.Range.End, n); i++ {
			if !set[i] {
				out[i] = m.Spec.Color
				set[i] = true
			}
		}
	}
	return out
}

// Spec builds the marker spec for a stored entry.
func Spec(axis types.Axis, e types.HighlightEntry) types.MarkerSpec {
	prio := types.PriorityColumn
	if axis == types.AxisRow {
		prio = types.PriorityRow
	}
	return types.MarkerSpec{
		Axis:      axis,
		Index:     e.Index,
		Color:     e.Color,
		Predicate: e.Predicate,
		Extend:    e.Extend,
		Priority:  prio,
	}
}

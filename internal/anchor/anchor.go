// Package anchor re-identifies tables across edits and sessions. A table is
// anchored by its declared name (a name directive line above it) and by the
// text immediately before its first character.
package anchor

import (
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// Options controls context capture and lookup.
type Options struct {
	// Width is the number of bytes captured before and after the table start.
	Width int
	// Directive is the name directive prefix, matched case-insensitively.
	Directive string
}

// OptionsFromConfig derives Options from a Config.
func OptionsFromConfig(cfg types.Config) Options {
	cfg = cfg.WithDefaults()
	return Options{Width: cfg.ContextWidth, Directive: cfg.NameDirective}
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = types.DefaultContextWidth
	}
	if o.Directive == "" {
		o.Directive = types.DefaultNameDirective
	}
	return o
}

// ComputeContext captures the context of the table starting at tableStart.
// The declared name is read from a directive on the line directly above the
// table; the text windows are clamped to the document and to rune boundaries.
func ComputeContext(text string, tableStart int, opts Options) types.TableContext {
	opts = opts.withDefaults()
	tableStart = clamp(tableStart, 0, len(text))

	before := ceilRune(text, clamp(tableStart-opts.Width, 0, len(text)))
	after := floorRune(text, clamp(tableStart+opts.Width, 0, len(text)))

	return types.TableContext{
		DeclaredName: declaredName(text, tableStart, opts.Directive),
		BeforeText:   text[before:tableStart],
		AfterText:    text[tableStart:after],
	}
}

// declaredName returns the name from a directive line immediately preceding
// the line that contains tableStart.
func declaredName(text string, tableStart int, directive string) string {
	lineStart := strings.LastIndexByte(text[:tableStart], '\n') + 1
	if lineStart == 0 {
		return ""
	}
	prevStart := strings.LastIndexByte(text[:lineStart-1], '\n') + 1
	name, ok := parseDirective(text[prevStart:lineStart-1], directive)
	if !ok {
		return ""
	}
	return name
}

// parseDirective extracts the name from a "#+NAME: foo" style line.
func parseDirective(line, directive string) (string, bool) {
	line = strings.TrimSpace(line)
	if len(line) < len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
		return "", false
	}
	name := strings.TrimSpace(line[len(directive):])
	return name, name != ""
}

// FindTable returns the record in doc whose DeclaredName and BeforeText equal
// those of ctx. AfterText is not compared: table content after the start
// drifts as cells are edited.
func FindTable(doc *types.DocumentHighlights, ctx types.TableContext) *types.TableHighlights {
	if doc == nil {
		return nil
	}
	for _, t := range doc.Tables {
		if Same(t.Context, ctx) {
			return t
		}
	}
	return nil
}

// Same reports whether two contexts identify the same table.
func Same(a, b types.TableContext) bool {
	return a.DeclaredName == b.DeclaredName && a.BeforeText == b.BeforeText
}

// Locate finds the current start of the table described by ctx. A declared
// name is searched for first; otherwise BeforeText, then AfterText. It
// returns false when no anchor is found, meaning the table moved or was
// deleted.
func Locate(text string, ctx types.TableContext, opts Options) (int, bool) {
	opts = opts.withDefaults()
	if ctx.DeclaredName != "" {
		if pos, ok := locateByName(text, ctx.DeclaredName, opts.Directive); ok {
			return pos, true
		}
	}
	if ctx.BeforeText != "" {
		if i := strings.Index(text, ctx.BeforeText); i >= 0 {
			return i + len(ctx.BeforeText), true
		}
	}
	if ctx.AfterText != "" {
		if i := strings.Index(text, ctx.AfterText); i >= 0 {
			return i, true
		}
	}
	return 0, false
}

// locateByName returns the start of the first table line following the
// directive that declares name.
func locateByName(text, name, directive string) (int, bool) {
	pos := 0
	for pos < len(text) {
		end := strings.IndexByte(text[pos:], '\n')
		var line string
		next := len(text)
		if end < 0 {
			line = text[pos:]
		} else {
			line = text[pos : pos+end]
			next = pos + end + 1
		}
		if got, ok := parseDirective(line, directive); ok && got == name {
			return firstTableLine(text, next)
		}
		pos = next
	}
	return 0, false
}

// firstTableLine returns the offset of the first line at or after from whose
// first non-blank character is '|', skipping other directive lines.
func firstTableLine(text string, from int) (int, bool) {
	pos := from
	for pos < len(text) {
		end := strings.IndexByte(text[pos:], '\n')
		line := text[pos:]
		next := len(text)
		if end >= 0 {
			line = text[pos : pos+end]
			next = pos + end + 1
		}
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, "|"):
			return pos + len(line) - len(trimmed), true
		case strings.HasPrefix(trimmed, "#+"):
			pos = next
		default:
			return 0, false
		}
	}
	return 0, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// floorRune moves i back to the start of the rune containing it.
func floorRune(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// ceilRune moves i forward to the next rune start.
func ceilRune(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}

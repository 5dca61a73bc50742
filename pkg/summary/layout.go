package summary

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kcaldas/treepeek/pkg/value"
)

// ellipsis is the reserved marker token. It is only ever emitted outside
// quotes, where no scalar rendering can produce it.
const ellipsis = "…"

// layout holds the formatting parameters shared by the renderer and the
// estimator. Every width it reports must match what the renderer writes.
type layout struct {
	pretty      bool
	indent      string
	indentWidth int
}

// container returns the width of a container placed at level that holds n
// entries whose own widths add up to sum.
func (l layout) container(level, n, sum int) int {
	if n == 0 {
		return 2
	}
	width := 2 + sum + (n - 1)
	if l.pretty {
		// newline after the opening bracket and after every entry
		width += n + 1
		width += n*(level+1)*l.indentWidth + level*l.indentWidth
	}
	return width
}

// key returns the width of `"key":` including the pretty-mode space.
func (l layout) key(k string) int {
	width := quotedWidth(k) + 1
	if l.pretty {
		width++
	}
	return width
}

// verbatim returns the width of a measured subtree placed at level.
func (l layout) verbatim(m *measured, level int) int {
	return m.size + m.newlines*level*l.indentWidth
}

// escapedWidth returns how many runes r takes once escaped.
func escapedWidth(r rune) int {
	switch r {
	case '"', '\\', '\n', '\r', '\t', '\b', '\f':
		return 2
	}
	if r < 0x20 || r == utf8.RuneError {
		return 6
	}
	return 1
}

// quotedWidth returns the width of s as a quoted, escaped string.
func quotedWidth(s string) int {
	width := 2
	for _, r := range s {
		width += escapedWidth(r)
	}
	return width
}

const hexDigits = "0123456789abcdef"

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			switch {
			case r == utf8.RuneError:
				sb.WriteString(`\ufffd`)
			case r < 0x20:
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[r>>4])
				sb.WriteByte(hexDigits[r&0xf])
			default:
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}

// scalarWidth returns the rendered width of a scalar value.
func scalarWidth(v value.Value) int {
	switch v.Kind() {
	case value.KindBool:
		if v.AsBool() {
			return 4
		}
		return 5
	case value.KindNumber:
		return len(v.Text())
	case value.KindString:
		return quotedWidth(v.Text())
	default:
		return 4
	}
}

func writeScalar(sb *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindBool:
		if v.AsBool() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case value.KindNumber:
		sb.WriteString(v.Text())
	case value.KindString:
		writeQuoted(sb, v.Text())
	default:
		sb.WriteString("null")
	}
}

// firstRunes returns the first n runes of s.
func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// markers produces the text of elisions. The renderer is parameterized by
// it so the machine and human forms share one layout walk.
type markers interface {
	elided(e Elision) string
	trailing(e Elision) string
	truncated(remaining int) string
}

func brackets(of value.Kind) (string, string) {
	if of == value.KindObject {
		return "{", "}"
	}
	return "[", "]"
}

func noun(of value.Kind, n int) string {
	switch {
	case of == value.KindObject && n == 1:
		return "key"
	case of == value.KindObject:
		return "keys"
	case n == 1:
		return "item"
	default:
		return "items"
	}
}

// machineMarkers is the compact, size-checked marker form.
type machineMarkers struct{}

func (machineMarkers) elided(e Elision) string {
	open, closing := brackets(e.Of)
	return open + ellipsis + " " + strconv.Itoa(e.Omitted) + " " + noun(e.Of, e.Omitted) + " omitted" + closing
}

func (machineMarkers) trailing(e Elision) string {
	return ellipsis + " " + strconv.Itoa(e.Omitted) + " more " + noun(e.Of, e.Omitted) + " omitted"
}

func (machineMarkers) truncated(remaining int) string {
	unit := "chars"
	if remaining == 1 {
		unit = "char"
	}
	return ellipsis + " " + strconv.Itoa(remaining) + " more " + unit
}

func markerWidth(s string) int {
	return utf8.RuneCountInString(s)
}

// elisionWidth returns the width of an elided node in machine form.
func elisionWidth(e Elision) int {
	if e.Trailing {
		return markerWidth(machineMarkers{}.trailing(e))
	}
	return markerWidth(machineMarkers{}.elided(e))
}

// truncatedWidth returns the width of a truncated string in machine form.
func truncatedWidth(prefix string, length int) int {
	remaining := length - utf8.RuneCountInString(prefix)
	return quotedWidth(prefix) + markerWidth(machineMarkers{}.truncated(remaining))
}

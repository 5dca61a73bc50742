package summary

import (
	"strings"
	"unicode/utf8"
)

// Render serializes a summary. Compact output has no optional whitespace;
// pretty output puts one entry per line. Elisions appear as markers such as
// `{… 2 keys omitted}` and `… 9990 more items omitted`.
func Render(n Node, opts Options) string {
	r := renderer{layout: opts.layout(), markers: machineMarkers{}}
	r.emit(n, 0)
	return r.sb.String()
}

type renderer struct {
	sb      strings.Builder
	layout  layout
	markers markers
}

func (r *renderer) emit(n Node, level int) {
	switch n.kind {
	case KindNull, KindBool, KindNumber, KindString:
		writeScalar(&r.sb, n.scalar)
	case KindTruncatedString:
		writeQuoted(&r.sb, n.prefix)
		r.sb.WriteString(r.markers.truncated(n.length - utf8.RuneCountInString(n.prefix)))
	case KindElided:
		if n.elision.Trailing {
			r.sb.WriteString(r.markers.trailing(n.elision))
		} else {
			r.sb.WriteString(r.markers.elided(n.elision))
		}
	case KindArray:
		r.open("[", len(n.items))
		for i, item := range n.items {
			r.beginEntry(level)
			r.emit(item, level+1)
			r.endEntry(i, len(n.items))
		}
		r.close("]", len(n.items), level)
	case KindObject:
		r.open("{", len(n.entries))
		for i, e := range n.entries {
			r.beginEntry(level)
			if !isTrailing(e.Node) {
				writeQuoted(&r.sb, e.Key)
				r.sb.WriteByte(':')
				if r.layout.pretty {
					r.sb.WriteByte(' ')
				}
			}
			r.emit(e.Node, level+1)
			r.endEntry(i, len(n.entries))
		}
		r.close("}", len(n.entries), level)
	}
}

func (r *renderer) open(bracket string, n int) {
	r.sb.WriteString(bracket)
	if r.layout.pretty && n > 0 {
		r.sb.WriteByte('\n')
	}
}

func (r *renderer) close(bracket string, n, level int) {
	if r.layout.pretty && n > 0 {
		r.writeIndent(level)
	}
	r.sb.WriteString(bracket)
}

func (r *renderer) beginEntry(level int) {
	if r.layout.pretty {
		r.writeIndent(level + 1)
	}
}

func (r *renderer) endEntry(i, n int) {
	if i < n-1 {
		r.sb.WriteByte(',')
	}
	if r.layout.pretty {
		r.sb.WriteByte('\n')
	}
}

func (r *renderer) writeIndent(level int) {
	for range level {
		r.sb.WriteString(r.layout.indent)
	}
}

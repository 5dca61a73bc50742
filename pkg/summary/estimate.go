package summary

import "github.com/kcaldas/treepeek/pkg/value"

// Estimate returns the rune length Render would produce for n, computed from
// literal widths, separators and indentation without building the text.
func Estimate(n Node, opts Options) int {
	return estimate(n, opts.layout(), 0)
}

// EstimateValue returns the rune length of the verbatim rendering of v.
func EstimateValue(v value.Value, opts Options) int {
	m := measure(v, opts.layout())
	return m.size
}

func estimate(n Node, l layout, level int) int {
	switch n.kind {
	case KindNull, KindBool, KindNumber, KindString:
		return scalarWidth(n.scalar)
	case KindTruncatedString:
		return truncatedWidth(n.prefix, n.length)
	case KindElided:
		return elisionWidth(n.elision)
	case KindArray:
		sum := 0
		for _, item := range n.items {
			sum += estimate(item, l, level+1)
		}
		return l.container(level, len(n.items), sum)
	case KindObject:
		sum := 0
		for _, e := range n.entries {
			if isTrailing(e.Node) {
				sum += elisionWidth(e.Node.elision)
				continue
			}
			sum += l.key(e.Key) + estimate(e.Node, l, level+1)
		}
		return l.container(level, len(n.entries), sum)
	default:
		return 0
	}
}

func isTrailing(n Node) bool {
	return n.kind == KindElided && n.elision.Trailing
}

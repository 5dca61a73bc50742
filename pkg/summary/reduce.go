package summary

import (
	"fmt"

	"github.com/kcaldas/treepeek/pkg/value"
)

// Reduce summarizes v keeping maxDepth container levels and at most itemCap
// entries per container (itemCap <= 0 keeps every entry). Strings longer than
// opts.StringThreshold are cut. An elision is only used where it renders
// shorter than the content it replaces, so empty and tiny containers always
// survive verbatim.
//
// Reduce never modifies v; the returned tree shares no storage with it.
func Reduce(v value.Value, maxDepth, itemCap int, opts Options) (Node, error) {
	opts = opts.normalized()
	if err := value.Validate(v); err != nil {
		return Node{}, err
	}
	if depth := value.Depth(v); depth > opts.MaxDepthCap {
		return Node{}, fmt.Errorf("%w: document depth %d exceeds cap %d", ErrMaxNestingExceeded, depth, opts.MaxDepthCap)
	}
	if maxDepth < 0 {
		maxDepth = 0
	}

	l := opts.layout()
	m := measure(v, l)
	r := reducer{layout: l, itemCap: itemCap, threshold: opts.StringThreshold}
	node, _ := r.reduce(v, &m, maxDepth, 0)
	return node, nil
}

type reducer struct {
	layout    layout
	itemCap   int
	threshold int
}

// reduce returns the summary of v placed at level together with its
// rendered width. Recursion only follows container nesting, which callers
// have checked against MaxDepthCap.
func (r *reducer) reduce(v value.Value, m *measured, depth, level int) (Node, int) {
	switch v.Kind() {
	case value.KindString:
		if m.runes > r.threshold {
			prefix := firstRunes(v.Text(), r.threshold)
			if width := truncatedWidth(prefix, m.runes); width < m.size {
				return truncatedString(prefix, m.runes), width
			}
		}
		return verbatim(v), m.size
	case value.KindArray, value.KindObject:
	default:
		return verbatim(v), m.size
	}

	full := r.layout.verbatim(m, level)
	n := v.Len()
	if n == 0 {
		return m.verbatimNode(v), full
	}

	if depth == 0 {
		marker := elided(v.Kind(), n, false, sampleKeys(v, 0))
		if width := elisionWidth(marker.elision); width < full {
			return marker, width
		}
		return m.verbatimNode(v), full
	}

	keep := n
	if r.itemCap > 0 && n > r.itemCap {
		keep = r.itemCap
	}

	var node Node
	sum := 0
	if v.Kind() == value.KindObject {
		entries := make([]Entry, 0, keep+1)
		for i := 0; i < keep; i++ {
			member := v.MemberAt(i)
			child, width := r.reduce(member.Value, &m.kids[i], depth-1, level+1)
			entries = append(entries, Entry{Key: member.Key, Node: child})
			sum += r.layout.key(member.Key) + width
		}
		if keep < n {
			rest := elided(value.KindObject, n-keep, true, sampleKeys(v, keep))
			entries = append(entries, Entry{Node: rest})
			sum += elisionWidth(rest.elision)
		}
		node = Node{kind: KindObject, entries: entries}
	} else {
		items := make([]Node, 0, keep+1)
		for i := 0; i < keep; i++ {
			child, width := r.reduce(v.Index(i), &m.kids[i], depth-1, level+1)
			items = append(items, child)
			sum += width
		}
		if keep < n {
			rest := elided(value.KindArray, n-keep, true, nil)
			items = append(items, rest)
			sum += elisionWidth(rest.elision)
		}
		node = Node{kind: KindArray, items: items}
	}

	width := r.layout.container(level, node.Len(), sum)
	if width < full {
		return node, width
	}
	return m.verbatimNode(v), full
}

// sampleKeys returns up to sampleSize object keys starting at from.
func sampleKeys(v value.Value, from int) []string {
	if v.Kind() != value.KindObject {
		return nil
	}
	end := min(from+sampleSize, v.Len())
	if from >= end {
		return nil
	}
	keys := make([]string, 0, end-from)
	for i := from; i < end; i++ {
		keys = append(keys, v.MemberAt(i).Key)
	}
	return keys
}

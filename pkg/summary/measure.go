package summary

import (
	"unicode/utf8"

	"github.com/kcaldas/treepeek/pkg/value"
)

// measured mirrors a value.Value with the width of its verbatim rendering at
// level 0. A subtree placed at level L gains L indents after each of its
// newlines, which is what layout.verbatim adds back.
type measured struct {
	size     int
	newlines int
	runes    int
	kids     []measured

	// node caches the verbatim Node of the subtree once a pass needed it.
	node *Node
}

// measure walks v once. The reducer consults the result to decide whether an
// elision actually saves space, in O(1) per node.
func measure(v value.Value, l layout) measured {
	switch v.Kind() {
	case value.KindString:
		return measured{size: quotedWidth(v.Text()), runes: utf8.RuneCountInString(v.Text())}
	case value.KindArray, value.KindObject:
	default:
		return measured{size: scalarWidth(v)}
	}

	n := v.Len()
	m := measured{kids: make([]measured, n)}
	sum := 0
	for i := 0; i < n; i++ {
		var child value.Value
		if v.Kind() == value.KindObject {
			member := v.MemberAt(i)
			child = member.Value
			sum += l.key(member.Key)
		} else {
			child = v.Index(i)
		}
		m.kids[i] = measure(child, l)
		sum += l.verbatim(&m.kids[i], 1)
		m.newlines += m.kids[i].newlines
	}
	m.size = l.container(0, n, sum)
	if l.pretty && n > 0 {
		m.newlines += n + 1
	}
	return m
}

// verbatimNode returns the verbatim Node of v, the value m was measured
// from. Containers are built at most once per measured tree and reuse the
// cached nodes of their children, so repeated passes that fall back to the
// verbatim form stay linear overall.
func (m *measured) verbatimNode(v value.Value) Node {
	if m.node != nil {
		return *m.node
	}

	var n Node
	switch v.Kind() {
	case value.KindArray:
		items := make([]Node, v.Len())
		for i := range items {
			items[i] = m.kids[i].verbatimNode(v.Index(i))
		}
		n = Node{kind: KindArray, items: items}
	case value.KindObject:
		entries := make([]Entry, v.Len())
		for i := range entries {
			member := v.MemberAt(i)
			entries[i] = Entry{Key: member.Key, Node: m.kids[i].verbatimNode(member.Value)}
		}
		n = Node{kind: KindObject, entries: entries}
	default:
		return verbatim(v)
	}
	m.node = &n
	return n
}

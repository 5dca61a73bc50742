package summary

import (
	"fmt"

	"github.com/kcaldas/treepeek/pkg/value"
)

// Kind identifies the variant held by a Node.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindTruncatedString
	KindArray
	KindObject
	KindElided
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTruncatedString:
		return "truncated_string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindElided:
		return "elided"
	default:
		return "unknown"
	}
}

// Node is one node of a summary tree. It has the shape of a value.Value with
// two extra variants: an elided container and a truncated string.
type Node struct {
	kind    Kind
	scalar  value.Value
	prefix  string
	length  int
	items   []Node
	entries []Entry
	elision Elision
}

// Entry is an object member of a summary. The trailing elision of a capped
// object is stored as an entry with an empty key.
type Entry struct {
	Key  string
	Node Node
}

// Elision describes collapsed container content.
type Elision struct {
	// Of is value.KindArray or value.KindObject.
	Of value.Kind

	// Omitted is the number of entries that were dropped.
	Omitted int

	// Trailing marks the remainder sibling emitted after the kept entries of
	// a capped container, as opposed to a whole container collapsed for depth.
	Trailing bool

	// Sample holds up to sampleSize of the omitted object keys.
	Sample []string
}

const sampleSize = 3

// FromValue converts v verbatim, without any elision. Like Reduce it rejects
// documents nested deeper than opts.MaxDepthCap, so every Node handed to
// Estimate and Render has bounded nesting.
func FromValue(v value.Value, opts Options) (Node, error) {
	opts = opts.normalized()
	if depth := value.Depth(v); depth > opts.MaxDepthCap {
		return Node{}, fmt.Errorf("%w: document depth %d exceeds cap %d", ErrMaxNestingExceeded, depth, opts.MaxDepthCap)
	}
	return verbatim(v), nil
}

// verbatim builds the Node of v. Callers have checked the nesting of v.
func verbatim(v value.Value) Node {
	switch v.Kind() {
	case value.KindNull:
		return Node{kind: KindNull, scalar: v}
	case value.KindBool:
		return Node{kind: KindBool, scalar: v}
	case value.KindNumber:
		return Node{kind: KindNumber, scalar: v}
	case value.KindString:
		return Node{kind: KindString, scalar: v}
	case value.KindArray:
		items := make([]Node, v.Len())
		for i := range items {
			items[i] = verbatim(v.Index(i))
		}
		return Node{kind: KindArray, items: items}
	default:
		entries := make([]Entry, v.Len())
		for i := range entries {
			m := v.MemberAt(i)
			entries[i] = Entry{Key: m.Key, Node: verbatim(m.Value)}
		}
		return Node{kind: KindObject, entries: entries}
	}
}

func elided(of value.Kind, omitted int, trailing bool, sample []string) Node {
	return Node{kind: KindElided, elision: Elision{Of: of, Omitted: omitted, Trailing: trailing, Sample: sample}}
}

func truncatedString(prefix string, length int) Node {
	return Node{kind: KindTruncatedString, prefix: prefix, length: length}
}

// Kind returns the variant of n.
func (n Node) Kind() Kind {
	return n.kind
}

// Scalar returns the original value of a null, bool, number or string node.
func (n Node) Scalar() value.Value {
	return n.scalar
}

// Prefix returns the kept head of a truncated string.
func (n Node) Prefix() string {
	return n.prefix
}

// OriginalLength returns the rune length of the string a truncated string
// was cut from.
func (n Node) OriginalLength() int {
	return n.length
}

// Elision returns the marker details of an elided node.
func (n Node) Elision() Elision {
	return n.elision
}

// Len returns the number of entries of an array or object node, counting a
// trailing elision as one entry.
func (n Node) Len() int {
	switch n.kind {
	case KindArray:
		return len(n.items)
	case KindObject:
		return len(n.entries)
	default:
		return 0
	}
}

// Item returns the i-th element of an array node.
func (n Node) Item(i int) Node {
	return n.items[i]
}

// EntryAt returns the i-th entry of an object node.
func (n Node) EntryAt(i int) Entry {
	return n.entries[i]
}

// Stats counts what a summary dropped.
type Stats struct {
	// Elisions is the number of elided nodes, trailing ones included.
	Elisions int

	// TruncatedStrings is the number of cut strings.
	TruncatedStrings int

	// OmittedEntries sums Elision.Omitted over all elided nodes.
	OmittedEntries int
}

// Lossless reports whether the summary shows the whole document.
func (s Stats) Lossless() bool {
	return s.Elisions == 0 && s.TruncatedStrings == 0
}

// Stats walks n and counts its elisions.
func (n Node) Stats() Stats {
	var s Stats
	stack := []Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch top.kind {
		case KindElided:
			s.Elisions++
			s.OmittedEntries += top.elision.Omitted
		case KindTruncatedString:
			s.TruncatedStrings++
		case KindArray:
			stack = append(stack, top.items...)
		case KindObject:
			for _, e := range top.entries {
				stack = append(stack, e.Node)
			}
		}
	}
	return s
}

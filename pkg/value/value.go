package value

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
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
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON-like document node.
//
// Constructors copy the slices they are given, so a Value never aliases
// caller-owned storage and can be shared between goroutines freely.
type Value struct {
	kind    Kind
	boolVal bool
	text    string // string contents, or the decimal literal of a number
	items   []Value
	members []Member
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the null value. The zero Value is also null.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolVal: b}
}

// Number returns a number holding the given decimal literal verbatim.
// The literal is checked by Validate, not here.
func Number(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// Int returns an integral number.
func Int(i int64) Value {
	return Number(strconv.FormatInt(i, 10))
}

// Float returns a number formatted the way encoding/json formats float64.
// NaN and infinities produce literals that Validate rejects.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number(strconv.FormatFloat(f, 'g', -1, 64))
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return Number(strconv.FormatFloat(f, format, -1, 64))
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Array returns an array holding a copy of items.
func Array(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: KindArray, items: copied}
}

// Object returns an object holding a copy of members in their given order.
// When a key repeats, the first occurrence keeps its position and the last
// value wins.
func Object(members ...Member) Value {
	copied := make([]Member, 0, len(members))
	index := make(map[string]int, len(members))
	for _, m := range members {
		if at, ok := index[m.Key]; ok {
			copied[at].Value = m.Value
			continue
		}
		index[m.Key] = len(copied)
		copied = append(copied, m)
	}
	return Value{kind: KindObject, members: copied}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool {
	return v.kind == KindArray || v.kind == KindObject
}

// AsBool returns the boolean payload; false for non-bool values.
func (v Value) AsBool() bool {
	return v.boolVal
}

// Text returns the string contents for strings and the decimal literal for
// numbers. It is empty for other kinds.
func (v Value) Text() string {
	return v.text
}

// Len returns the number of entries of a container, zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th array element.
func (v Value) Index(i int) Value {
	return v.items[i]
}

// MemberAt returns the i-th object member.
func (v Value) MemberAt(i int) Member {
	return v.members[i]
}

// Get looks up an object member by key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the object keys in order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// child returns the i-th entry of a container regardless of its kind.
func (v Value) child(i int) Value {
	if v.kind == KindObject {
		return v.members[i].Value
	}
	return v.items[i]
}

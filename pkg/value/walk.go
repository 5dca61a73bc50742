package value

import "fmt"

// Validate checks that every number in v holds a finite decimal literal.
// It walks the tree iteratively so arbitrarily deep input cannot exhaust
// the stack.
func Validate(v Value) error {
	stack := []Value{v}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch top.kind {
		case KindNumber:
			if !IsDecimalLiteral(top.text) {
				return fmt.Errorf("%w: number %q is not a finite decimal", ErrInvalidInput, top.text)
			}
		case KindArray, KindObject:
			for i := top.Len() - 1; i >= 0; i-- {
				stack = append(stack, top.child(i))
			}
		}
	}
	return nil
}

// Depth returns the number of nested container levels in v. Scalars have
// depth 0 and a container, empty or not, adds one level to its deepest
// entry.
func Depth(v Value) int {
	type frame struct {
		v     Value
		level int
	}
	deepest := 0
	stack := []frame{{v: v}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !top.v.IsContainer() {
			continue
		}
		if top.level+1 > deepest {
			deepest = top.level + 1
		}
		for i := top.v.Len() - 1; i >= 0; i-- {
			if child := top.v.child(i); child.IsContainer() {
				stack = append(stack, frame{v: child, level: top.level + 1})
			}
		}
	}
	return deepest
}

// Count returns the total number of nodes in v, v included.
func Count(v Value) int {
	total := 0
	stack := []Value{v}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++
		for i := 0; i < top.Len(); i++ {
			stack = append(stack, top.child(i))
		}
	}
	return total
}

// IsDecimalLiteral reports whether s is a JSON number literal.
func IsDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		i = skipDigits(s, i)
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		start := i + 1
		i = skipDigits(s, start)
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		i = skipDigits(s, start)
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

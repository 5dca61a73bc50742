package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// FromAny converts a Go tree of the shapes encoding/json produces
// (map[string]any, []any, string, float64, bool, nil, json.Number) plus the
// common integer types into a Value. Map keys are sorted since Go maps carry
// no order. Non-finite floats and maps or slices that contain themselves are
// rejected with ErrInvalidInput.
func FromAny(x any) (Value, error) {
	c := &anyConverter{active: make(map[anyRef]bool)}
	return c.convert(x, 0)
}

type anyRef struct {
	ptr uintptr
	len int
}

type anyConverter struct {
	active map[anyRef]bool
}

func (c *anyConverter) convert(x any, depth int) (Value, error) {
	if depth > MaxDecodeDepth {
		return Value{}, fmt.Errorf("%w: nesting exceeds %d levels", ErrInvalidInput, MaxDecodeDepth)
	}

	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		if !IsDecimalLiteral(string(t)) {
			return Value{}, fmt.Errorf("%w: number %q is not a finite decimal", ErrInvalidInput, string(t))
		}
		return Number(string(t)), nil
	case float64:
		return finiteFloat(t)
	case float32:
		return finiteFloat(float64(t))
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(t, 10)), nil
	case []any:
		ref := anyRef{ptr: reflect.ValueOf(t).Pointer(), len: len(t)}
		if err := c.enter(ref); err != nil {
			return Value{}, err
		}
		defer c.leave(ref)

		items := make([]Value, 0, len(t))
		for _, item := range t {
			v, err := c.convert(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{kind: KindArray, items: items}, nil
	case map[string]any:
		ref := anyRef{ptr: reflect.ValueOf(t).Pointer(), len: -1}
		if err := c.enter(ref); err != nil {
			return Value{}, err
		}
		defer c.leave(ref)

		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			v, err := c.convert(t[k], depth+1)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: k, Value: v})
		}
		return Value{kind: KindObject, members: members}, nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidInput, x)
	}
}

func (c *anyConverter) enter(ref anyRef) error {
	if ref.ptr == 0 || ref.len == 0 {
		return nil
	}
	if c.active[ref] {
		return fmt.Errorf("%w: cyclic structure", ErrInvalidInput)
	}
	c.active[ref] = true
	return nil
}

func (c *anyConverter) leave(ref anyRef) {
	delete(c.active, ref)
}

func finiteFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: number %v is not finite", ErrInvalidInput, f)
	}
	return Float(f), nil
}

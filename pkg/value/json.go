package value

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

// MaxDecodeDepth bounds the nesting the decoders accept.
const MaxDecodeDepth = 10000

// FromJSON decodes a JSON document, keeping object key order and number
// literals exactly as written. Comments and trailing commas (JSONC) are
// accepted.
func FromJSON(data []byte) (Value, error) {
	clean := jsonc.ToJSON(data)
	if !gjson.ValidBytes(clean) {
		return Value{}, fmt.Errorf("%w: invalid JSON", ErrSyntax)
	}
	return fromResult(gjson.ParseBytes(clean), 0)
}

// FromJSONPath decodes the part of a JSON document selected by a gjson path
// such as "data.items" or "results.#.id".
func FromJSONPath(data []byte, path string) (Value, error) {
	if path == "" {
		return FromJSON(data)
	}
	clean := jsonc.ToJSON(data)
	if !gjson.ValidBytes(clean) {
		return Value{}, fmt.Errorf("%w: invalid JSON", ErrSyntax)
	}
	selected := gjson.GetBytes(clean, path)
	if !selected.Exists() {
		return Value{}, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return fromResult(selected, 0)
}

func fromResult(r gjson.Result, depth int) (Value, error) {
	if depth > MaxDecodeDepth {
		return Value{}, fmt.Errorf("%w: nesting exceeds %d levels", ErrInvalidInput, MaxDecodeDepth)
	}

	switch r.Type {
	case gjson.Null:
		return Null(), nil
	case gjson.False:
		return Bool(false), nil
	case gjson.True:
		return Bool(true), nil
	case gjson.Number:
		if !IsDecimalLiteral(r.Raw) {
			return Value{}, fmt.Errorf("%w: number %q is not a finite decimal", ErrInvalidInput, r.Raw)
		}
		return Number(r.Raw), nil
	case gjson.String:
		return String(r.Str), nil
	}

	var err error
	switch {
	case r.IsArray():
		var items []Value
		r.ForEach(func(_, item gjson.Result) bool {
			var v Value
			v, err = fromResult(item, depth+1)
			items = append(items, v)
			return err == nil
		})
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindArray, items: items}, nil
	case r.IsObject():
		var members []Member
		r.ForEach(func(key, item gjson.Result) bool {
			var v Value
			v, err = fromResult(item, depth+1)
			members = append(members, Member{Key: key.Str, Value: v})
			return err == nil
		})
		if err != nil {
			return Value{}, err
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected token %q", ErrSyntax, r.Raw)
	}
}

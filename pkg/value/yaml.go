package value

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes the first document of a YAML stream. Mapping order is
// preserved. Aliases are expanded; an alias that refers back to one of its
// own ancestors is rejected as cyclic. Merge keys (<<) are expanded in place:
// explicit keys win over merged ones, and earlier maps in a merge sequence
// win over later ones.
func FromYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	d := &yamlDecoder{active: make(map[*yaml.Node]bool)}
	return d.decode(&doc, 0)
}

type yamlDecoder struct {
	active map[*yaml.Node]bool
}

func (d *yamlDecoder) decode(n *yaml.Node, depth int) (Value, error) {
	if depth > MaxDecodeDepth {
		return Value{}, fmt.Errorf("%w: nesting exceeds %d levels", ErrInvalidInput, MaxDecodeDepth)
	}
	if d.active[n] {
		return Value{}, fmt.Errorf("%w: cyclic alias at line %d", ErrInvalidInput, n.Line)
	}
	d.active[n] = true
	defer delete(d.active, n)

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return d.decode(n.Content[0], depth)
	case yaml.AliasNode:
		return d.decode(n.Alias, depth)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.decode(c, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{kind: KindArray, items: items}, nil
	case yaml.MappingNode:
		return d.decodeMapping(n, depth)
	case yaml.ScalarNode:
		return decodeYAMLScalar(n)
	default:
		return Value{}, fmt.Errorf("%w: unsupported YAML node at line %d", ErrSyntax, n.Line)
	}
}

func (d *yamlDecoder) decodeMapping(n *yaml.Node, depth int) (Value, error) {
	explicit := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if key := resolveAlias(n.Content[i]); !isMergeKey(key) {
			explicit[key.Value] = true
		}
	}

	members := make([]Member, 0, len(n.Content)/2)
	merged := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveAlias(n.Content[i])
		v, err := d.decode(n.Content[i+1], depth+1)
		if err != nil {
			return Value{}, err
		}
		if !isMergeKey(key) {
			members = append(members, Member{Key: key.Value, Value: v})
			continue
		}

		sources, err := mergeSources(v, key.Line)
		if err != nil {
			return Value{}, err
		}
		for _, src := range sources {
			for _, m := range src.members {
				if explicit[m.Key] || merged[m.Key] {
					continue
				}
				merged[m.Key] = true
				members = append(members, m)
			}
		}
	}
	return Object(members...), nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

// mergeSources returns the maps named by the value of a merge key: a single
// map or a sequence of maps.
func mergeSources(v Value, line int) ([]Value, error) {
	switch v.Kind() {
	case KindObject:
		return []Value{v}, nil
	case KindArray:
		for _, item := range v.items {
			if item.Kind() != KindObject {
				return nil, fmt.Errorf("%w: merge key at line %d needs maps", ErrSyntax, line)
			}
		}
		return v.items, nil
	}
	return nil, fmt.Errorf("%w: merge key at line %d needs a map", ErrSyntax, line)
}

func decodeYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		return Bool(b), nil
	case "!!int":
		if IsDecimalLiteral(n.Value) {
			return Number(n.Value), nil
		}
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, fmt.Errorf("%w: integer %q: %v", ErrInvalidInput, n.Value, err)
		}
		return Int(i), nil
	case "!!float":
		if IsDecimalLiteral(n.Value) {
			return Number(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("%w: float %q: %v", ErrInvalidInput, n.Value, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, fmt.Errorf("%w: number %q is not finite", ErrInvalidInput, strings.TrimSpace(n.Value))
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

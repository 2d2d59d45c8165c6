package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is a single key/value pair of a Dict.
type Entry struct {
	Key   string
	Value any
}

// Dict is an ordered string-keyed mapping. It is both the boundary object
// format consumed by the FromDict constructors and the clean view produced
// by each node's Dict method.
type Dict []Entry

// Get returns the value stored under key.
func (d Dict) Get(key string) (any, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present, even with a nil value.
func (d Dict) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Set replaces the value stored under key, or appends a new entry.
func (d *Dict) Set(key string, value any) {
	for i := range *d {
		if (*d)[i].Key == key {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, Entry{Key: key, Value: value})
}

// Keys returns the keys in order.
func (d Dict) Keys() []string {
	keys := make([]string, len(d))
	for i, e := range d {
		keys[i] = e.Key
	}
	return keys
}

// put appends key/value unless value is absent: nil, an empty string, or an
// empty list or Dict.
func (d *Dict) put(key string, value any) {
	if isEmpty(value) {
		return
	}
	*d = append(*d, Entry{Key: key, Value: value})
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case []Dict:
		return len(v) == 0
	case Dict:
		return len(v) == 0
	}
	return false
}

// MarshalJSON encodes the Dict as a JSON object, keeping entry order.
func (d Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(jsonValue(e.Value))
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", e.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the Dict as a YAML mapping, keeping entry order.
func (d Dict) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range d {
		val, err := yamlValue(e.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", e.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			val,
		)
	}
	return node, nil
}

// floatText formats f so that it reads back as a float: integral values
// keep a trailing ".0".
func floatText(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

// jsonFloat encodes a float64 so that integral values stay floats.
type jsonFloat float64

// MarshalJSON implements json.Marshaler.
func (f jsonFloat) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return nil, fmt.Errorf("unsupported float value %v", float64(f))
	}
	return []byte(floatText(float64(f))), nil
}

func jsonValue(v any) any {
	switch t := v.(type) {
	case float64:
		return jsonFloat(t)
	case float32:
		return jsonFloat(t)
	case []float64:
		out := make([]jsonFloat, len(t))
		for i, f := range t {
			out[i] = jsonFloat(f)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = jsonValue(item)
		}
		return out
	}
	return v
}

func yamlValue(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case float64:
		return floatNode(t), nil
	case float32:
		return floatNode(float64(t)), nil
	case []float64:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, f := range t {
			seq.Content = append(seq.Content, floatNode(f))
		}
		return seq, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			n, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}

func floatNode(f float64) *yaml.Node {
	var text string
	switch {
	case math.IsInf(f, 1):
		text = ".inf"
	case math.IsInf(f, -1):
		text = "-.inf"
	case math.IsNaN(f):
		text = ".nan"
	default:
		text = floatText(f)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: text}
}

// UnmarshalYAML decodes a YAML (or JSON) mapping into d, keeping document
// key order. Nested mappings become Dict values and sequences []any.
func (d *Dict) UnmarshalYAML(node *yaml.Node) error {
	v, err := nodeValue(node)
	if err != nil {
		return err
	}
	dict, ok := v.(Dict)
	if !ok {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node))
	}
	*d = dict
	return nil
}

func nodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return nodeValue(node.Content[0])
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.MappingNode:
		d := make(Dict, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k := node.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			v, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			d.Set(k.Value, v)
		}
		return d, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported node", node.Line)
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	}
	return "an empty document"
}

// DictFromMap converts a plain map, such as one produced by encoding/json,
// into a Dict. Keys are sorted since maps carry no order.
func DictFromMap(m map[string]any) Dict {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d := make(Dict, 0, len(m))
	for _, k := range keys {
		d = append(d, Entry{Key: k, Value: fromPlain(m[k])})
	}
	return d
}

func fromPlain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return DictFromMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = fromPlain(item)
		}
		return out
	}
	return v
}

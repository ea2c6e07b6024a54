package document

import (
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"gopkg.in/yaml.v3"
)

// Kind identifies the shape of a node in the tree
type Kind int

const (
	// NullNode is an explicit or implicit null (`key:` with no value)
	NullNode Kind = iota
	// ScalarNode is a string, number, boolean, or timestamp
	ScalarNode
	// MapNode is a mapping with string keys in source order
	MapNode
	// ListNode is a sequence
	ListNode
)

func (k Kind) String() string {
	switch k {
	case NullNode:
		return "null"
	case ScalarNode:
		return "scalar"
	case MapNode:
		return "mapping"
	case ListNode:
		return "list"
	default:
		return "unknown"
	}
}

// YAML core schema tags kept on scalar nodes
const (
	TagString    = "!!str"
	TagInt       = "!!int"
	TagFloat     = "!!float"
	TagBool      = "!!bool"
	TagNull      = "!!null"
	TagTimestamp = "!!timestamp"
)

// Node is one value of the document tree with the source range it was read from
type Node struct {
	Kind  Kind
	Tag   string
	Value string
	Range hcl.Range

	Fields []*Field // MapNode only, source order
	Items  []*Node  // ListNode only
}

// Field is a single key/value pair of a mapping
type Field struct {
	Key      string
	KeyRange hcl.Range
	Value    *Node
}

// Range spans from the start of the key to the end of the value.
func (f *Field) Range() hcl.Range {
	if f.Value == nil {
		return f.KeyRange
	}
	return hcl.RangeBetween(f.KeyRange, f.Value.Range)
}

// NewScalar returns a string scalar located at rng
func NewScalar(value string, rng hcl.Range) *Node {
	return &Node{Kind: ScalarNode, Tag: TagString, Value: value, Range: rng}
}

// IsNull reports whether the node is absent or an explicit null.
func (n *Node) IsNull() bool {
	return n == nil || n.Kind == NullNode
}

// IsScalar reports whether the node holds a single value.
func (n *Node) IsScalar() bool {
	return n != nil && n.Kind == ScalarNode
}

// IsMap reports whether the node is a mapping.
func (n *Node) IsMap() bool {
	return n != nil && n.Kind == MapNode
}

// IsList reports whether the node is a sequence.
func (n *Node) IsList() bool {
	return n != nil && n.Kind == ListNode
}

// Lookup returns the field stored under key, or nil.
func (n *Node) Lookup(key string) *Field {
	if !n.IsMap() {
		return nil
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f
		}
	}
	return nil
}

// Get returns the value stored under key, or nil.
func (n *Node) Get(key string) *Node {
	if f := n.Lookup(key); f != nil {
		return f.Value
	}
	return nil
}

// Has reports whether key is present, even with a null value.
func (n *Node) Has(key string) bool {
	return n.Lookup(key) != nil
}

// Keys returns the mapping keys in source order.
func (n *Node) Keys() []string {
	if !n.IsMap() {
		return nil
	}
	keys := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// Index returns the i-th list item, or nil when out of range.
func (n *Node) Index(i int) *Node {
	if !n.IsList() || i < 0 || i >= len(n.Items) {
		return nil
	}
	return n.Items[i]
}

// Len returns the number of items or fields.
func (n *Node) Len() int {
	switch {
	case n.IsList():
		return len(n.Items)
	case n.IsMap():
		return len(n.Fields)
	default:
		return 0
	}
}

// Set replaces the value stored under key, appending a new field when absent.
func (n *Node) Set(key string, value *Node) {
	if f := n.Lookup(key); f != nil {
		f.Value = value
		return
	}
	n.Fields = append(n.Fields, &Field{Key: key, KeyRange: value.Range, Value: value})
}

// Without returns a mapping holding every field of n except keys. Field
// values are shared with n. Nodes other than mappings are returned as is.
func (n *Node) Without(keys ...string) *Node {
	if !n.IsMap() || len(keys) == 0 {
		return n
	}
	out := &Node{Kind: n.Kind, Tag: n.Tag, Value: n.Value, Range: n.Range, Fields: make([]*Field, 0, len(n.Fields))}
	for _, f := range n.Fields {
		if !slices.Contains(keys, f.Key) {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}

// Copy returns a deep copy of the subtree; source ranges are preserved.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind, Tag: n.Tag, Value: n.Value, Range: n.Range}
	if n.Fields != nil {
		out.Fields = make([]*Field, len(n.Fields))
		for i, f := range n.Fields {
			out.Fields[i] = &Field{Key: f.Key, KeyRange: f.KeyRange, Value: f.Value.Copy()}
		}
	}
	if n.Items != nil {
		out.Items = make([]*Node, len(n.Items))
		for i, item := range n.Items {
			out.Items[i] = item.Copy()
		}
	}
	return out
}

// Interface converts the subtree to plain Go values: map[string]any, []any,
// string, int, float64, bool, or nil. Timestamps stay strings.
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case MapNode:
		m := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			m[f.Key] = f.Value.Interface()
		}
		return m
	case ListNode:
		l := make([]any, len(n.Items))
		for i, item := range n.Items {
			l[i] = item.Interface()
		}
		return l
	case ScalarNode:
		return n.scalarValue()
	default:
		return nil
	}
}

func (n *Node) scalarValue() any {
	switch n.Tag {
	case TagInt:
		if v, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return int(v)
		}
	case TagFloat:
		if v, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return v
		}
	case TagBool:
		return strings.EqualFold(n.Value, "true")
	}
	return n.Value
}

// InputString renders the node the way it is echoed back to users in
// diagnostics: scalars verbatim, containers elided.
func (n *Node) InputString() string {
	switch {
	case n == nil:
		return ""
	case n.Kind == ScalarNode:
		return n.Value
	case n.Kind == NullNode:
		return "null"
	default:
		return "..."
	}
}

// ToYAML converts the subtree back to a yaml.v3 node, keeping tags.
func (n *Node) ToYAML() *yaml.Node {
	switch {
	case n.IsNull():
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: TagNull, Value: "null"}
	case n.IsMap():
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range n.Fields {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: TagString, Value: f.Key}
			out.Content = append(out.Content, key, f.Value.ToYAML())
		}
		return out
	case n.IsList():
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.Items {
			out.Content = append(out.Content, item.ToYAML())
		}
		return out
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: n.Tag, Value: n.Value}
	}
}

// Decode stores the subtree in the value pointed to by v, like
// (*yaml.Node).Decode. Fields absent from the subtree keep their values.
func (n *Node) Decode(v any) error {
	return n.ToYAML().Decode(v)
}

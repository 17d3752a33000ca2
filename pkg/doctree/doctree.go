// Package doctree represents a parsed structured document (YAML or JSON) as a
// generic read-only tree of mappings, sequences, and scalars.
//
// # Design
//
// A Node is a tagged union of four kinds: Mapping, Sequence, Scalar, and
// Absent. All accessors fail closed: looking up a path through a missing
// intermediate key yields an Absent node instead of an error, so presence
// checks happen at the call site where the expectation lives.
//
// Paths use dotted segments with optional sequence indexes:
//
//	jobs.build.steps[2].name
//
// Nodes are immutable after construction. Sequence order is preserved exactly
// as declared in the source document.
package doctree

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/actionvet/actionvet/pkg/logger"
	"github.com/goccy/go-yaml"
)

var log = logger.New("doctree:doctree")

// Kind identifies the variant a Node holds.
type Kind int

const (
	// Absent marks a node for a path that does not exist in the document.
	Absent Kind = iota
	// Scalar holds a single YAML scalar value (string, number, bool, null).
	Scalar
	// Sequence holds an ordered list of child nodes.
	Sequence
	// Mapping holds named child nodes.
	Mapping
)

// String returns the kind name for error messages.
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "absent"
	}
}

// Node is one vertex of a parsed document tree.
// The zero value is an Absent node.
type Node struct {
	kind  Kind
	value any
	seq   []Node
	attrs map[string]Node
}

// Parse parses YAML (or JSON, which is a YAML subset) content into a tree.
func Parse(content []byte) (Node, error) {
	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return Node{}, fmt.Errorf("failed to parse document: %w", err)
	}
	node := FromValue(raw)
	log.Printf("Parsed document: root_kind=%s, size=%d bytes", node.Kind(), len(content))
	return node, nil
}

// FromValue wraps an already-decoded document value (map[string]any, []any,
// or a scalar) into a Node tree.
func FromValue(v any) Node {
	switch val := v.(type) {
	case nil:
		return Node{kind: Scalar, value: nil}
	case map[string]any:
		attrs := make(map[string]Node, len(val))
		for k, child := range val {
			attrs[k] = FromValue(child)
		}
		return Node{kind: Mapping, attrs: attrs}
	case []any:
		seq := make([]Node, len(val))
		for i, child := range val {
			seq[i] = FromValue(child)
		}
		return Node{kind: Sequence, seq: seq}
	default:
		return Node{kind: Scalar, value: val}
	}
}

// Kind returns the variant this node holds.
func (n Node) Kind() Kind {
	return n.kind
}

// IsAbsent reports whether the node marks a missing path.
func (n Node) IsAbsent() bool {
	return n.kind == Absent
}

// Key descends into a mapping by key. Absent for non-mappings and missing keys.
func (n Node) Key(name string) Node {
	if n.kind != Mapping {
		return Node{}
	}
	child, ok := n.attrs[name]
	if !ok {
		return Node{}
	}
	return child
}

// At descends into a sequence by index. Absent for non-sequences and
// out-of-range indexes.
func (n Node) At(i int) Node {
	if n.kind != Sequence || i < 0 || i >= len(n.seq) {
		return Node{}
	}
	return n.seq[i]
}

// Len returns the element count for sequences and the key count for
// mappings; zero otherwise.
func (n Node) Len() int {
	switch n.kind {
	case Sequence:
		return len(n.seq)
	case Mapping:
		return len(n.attrs)
	default:
		return 0
	}
}

// Keys returns the mapping keys in sorted order, or nil for non-mappings.
func (n Node) Keys() []string {
	if n.kind != Mapping {
		return nil
	}
	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup resolves a dotted path such as "jobs.build.steps[2].name".
// Any missing intermediate key or index yields an Absent node.
func (n Node) Lookup(path string) Node {
	segments, err := parsePath(path)
	if err != nil {
		log.Printf("Invalid lookup path %q: %v", path, err)
		return Node{}
	}
	current := n
	for _, seg := range segments {
		if seg.key != "" {
			current = current.Key(seg.key)
		}
		for _, idx := range seg.indexes {
			current = current.At(idx)
		}
		if current.IsAbsent() {
			return Node{}
		}
	}
	return current
}

// AsString returns the node's value when it is a string scalar.
func (n Node) AsString() (string, bool) {
	if n.kind != Scalar {
		return "", false
	}
	s, ok := n.value.(string)
	return s, ok
}

// AsText renders any scalar value as text. Numbers and booleans are
// formatted the way they appear in the source document, so expected-vs-actual
// comparisons read naturally.
func (n Node) AsText() (string, bool) {
	if n.kind != Scalar || n.value == nil {
		return "", false
	}
	if s, ok := n.value.(string); ok {
		return s, true
	}
	return fmt.Sprintf("%v", n.value), true
}

// GetString resolves a path to a string scalar, failing closed.
func (n Node) GetString(path string) (string, bool) {
	return n.Lookup(path).AsString()
}

// GetText resolves a path to any scalar rendered as text, failing closed.
func (n Node) GetText(path string) (string, bool) {
	return n.Lookup(path).AsText()
}

// GetSequence resolves a path to a sequence's elements, failing closed.
func (n Node) GetSequence(path string) ([]Node, bool) {
	node := n.Lookup(path)
	if node.kind != Sequence {
		return nil, false
	}
	return node.seq, true
}

// GetMapping resolves a path to a mapping, failing closed.
func (n Node) GetMapping(path string) (Node, bool) {
	node := n.Lookup(path)
	if node.kind != Mapping {
		return Node{}, false
	}
	return node, true
}

// Strings resolves a path to a sequence of string scalars. Non-string
// elements fail the whole lookup.
func (n Node) Strings(path string) ([]string, bool) {
	elems, ok := n.GetSequence(path)
	if !ok {
		return nil, false
	}
	out := make([]string, len(elems))
	for i, elem := range elems {
		s, ok := elem.AsString()
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

// Equal reports structural equality of two trees: same kinds, same mapping
// keys, same sequence order, and equal scalar values.
func Equal(a, b Node) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Scalar:
		return reflect.DeepEqual(a.value, b.value)
	case Sequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case Mapping:
		if len(a.attrs) != len(b.attrs) {
			return false
		}
		for k, av := range a.attrs {
			bv, ok := b.attrs[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

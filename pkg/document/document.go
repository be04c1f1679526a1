package document

import (
	"math"
	"strconv"

	"github.com/arthur-debert/labws/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Short tags of the scalar kinds a document may contain.
const (
	TagStr   = "!!str"
	TagInt   = "!!int"
	TagFloat = "!!float"
	TagBool  = "!!bool"
	TagNull  = "!!null"
)

// Parse decodes YAML or JSON bytes and returns the root content node.
// Parse does not call Check; encoding and substitution do.
func Parse(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplateParse, "failed to parse document")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New(errors.ErrTemplateParse, "document is empty")
	}
	return doc.Content[0], nil
}

// Check reports whether n can be represented as plain JSON data.
func Check(n *yaml.Node) error {
	return check(n, Pointer{})
}

func check(n *yaml.Node, at Pointer) error {
	if n == nil {
		return serializationError(at, "nil node")
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return serializationError(at, "document node must hold exactly one value")
		}
		return check(n.Content[0], at)

	case yaml.AliasNode:
		return serializationError(at, "alias *%s is not supported", n.Value)

	case yaml.ScalarNode:
		return checkScalar(n, at)

	case yaml.SequenceNode:
		for i, c := range n.Content {
			if err := check(c, at.Append(strconv.Itoa(i))); err != nil {
				return err
			}
		}
		return nil

	case yaml.MappingNode:
		if len(n.Content)%2 != 0 {
			return serializationError(at, "mapping has a key without a value")
		}
		seen := make(map[string]bool, len(n.Content)/2)
		for i := 0; i < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k == nil || k.Kind != yaml.ScalarNode {
				return serializationError(at, "mapping keys must be scalars")
			}
			if err := checkScalar(k, at); err != nil {
				return err
			}
			if seen[k.Value] {
				return serializationError(at, "duplicate key %q", k.Value)
			}
			seen[k.Value] = true
			if err := check(v, at.Append(k.Value)); err != nil {
				return err
			}
		}
		return nil
	}

	return serializationError(at, "unsupported node kind %d", n.Kind)
}

func checkScalar(n *yaml.Node, at Pointer) error {
	switch tag := n.ShortTag(); tag {
	case TagStr, TagBool, TagNull:
		return nil
	case TagInt:
		if _, err := intText(n); err != nil {
			return serializationError(at, "integer %q is out of range", n.Value)
		}
		return nil
	case TagFloat:
		var f float64
		if err := n.Decode(&f); err != nil {
			return serializationError(at, "invalid float %q", n.Value)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return serializationError(at, "non-finite float %q", n.Value)
		}
		return nil
	default:
		return serializationError(at, "unsupported tag %s", tag)
	}
}

// intText renders an !!int scalar in canonical decimal form.
func intText(n *yaml.Node) (string, error) {
	var i int64
	if err := n.Decode(&i); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	var u uint64
	if err := n.Decode(&u); err != nil {
		return "", err
	}
	return strconv.FormatUint(u, 10), nil
}

func serializationError(at Pointer, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrSerialization, format, args...).
		WithDetail("path", at.String())
}

// Clone returns a deep copy of n. Alias targets are shared, not copied.
func Clone(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Content != nil {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = Clone(c)
		}
	}
	return &out
}

// Equal compares two documents by structure: node kinds, scalar tags and
// values, key order and sequence order. Styles, comments and source
// positions are ignored.
func Equal(a, b *yaml.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case yaml.ScalarNode:
		return a.ShortTag() == b.ShortTag() && a.Value == b.Value
	case yaml.AliasNode:
		return a.Value == b.Value
	}
	if len(a.Content) != len(b.Content) {
		return false
	}
	for i := range a.Content {
		if !Equal(a.Content[i], b.Content[i]) {
			return false
		}
	}
	return true
}

// Unwrap returns the value held by a document node, or n itself.
func Unwrap(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		return n.Content[0]
	}
	return n
}

package document

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/labws/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Pointer is a parsed RFC 6901 JSON pointer. The empty pointer addresses the
// whole document.
type Pointer []string

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")
var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// ParsePointer parses s, for example "/tasks/tasks".
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if s[0] != '/' {
		return nil, errors.Newf(errors.ErrPathInvalid, "pointer %q must start with '/'", s)
	}
	raw := strings.Split(s[1:], "/")
	p := make(Pointer, len(raw))
	for i, tok := range raw {
		for j := 0; j < len(tok); j++ {
			if tok[j] == '~' && (j+1 == len(tok) || (tok[j+1] != '0' && tok[j+1] != '1')) {
				return nil, errors.Newf(errors.ErrPathInvalid, "pointer %q has an invalid escape", s)
			}
		}
		p[i] = pointerUnescaper.Replace(tok)
	}
	return p, nil
}

// String renders p in RFC 6901 form.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(tok))
	}
	return b.String()
}

// Append returns a new pointer one level below p. p itself is not modified.
func (p Pointer) Append(tok string) Pointer {
	out := make(Pointer, len(p), len(p)+1)
	copy(out, p)
	return append(out, tok)
}

// Lookup returns the node p addresses inside root.
func Lookup(root *yaml.Node, p Pointer) (*yaml.Node, error) {
	n := Unwrap(root)
	for depth, tok := range p {
		idx, err := childIndex(n, tok)
		if err != nil {
			return nil, errors.AddDetail(err, "path", p[:depth+1].String())
		}
		n = n.Content[idx]
	}
	return n, nil
}

// Replace returns a new document in which the node at p is v. Nodes on the
// way to p are copied; everything else is shared with root, which is left
// untouched.
func Replace(root *yaml.Node, p Pointer, v *yaml.Node) (*yaml.Node, error) {
	out, err := replace(Unwrap(root), p, v)
	if err != nil {
		return nil, errors.AddDetail(err, "path", p.String())
	}
	return out, nil
}

func replace(n *yaml.Node, p Pointer, v *yaml.Node) (*yaml.Node, error) {
	if len(p) == 0 {
		return v, nil
	}
	idx, err := childIndex(n, p[0])
	if err != nil {
		return nil, err
	}
	child, err := replace(n.Content[idx], p[1:], v)
	if err != nil {
		return nil, err
	}
	out := *n
	out.Content = make([]*yaml.Node, len(n.Content))
	copy(out.Content, n.Content)
	out.Content[idx] = child
	return &out, nil
}

// childIndex finds the position in n.Content of the value addressed by tok.
func childIndex(n *yaml.Node, tok string) (int, error) {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == tok {
				return i + 1, nil
			}
		}
		return 0, errors.Newf(errors.ErrPathNotFound, "key %q not found", tok)

	case yaml.SequenceNode:
		if tok == "" || (len(tok) > 1 && tok[0] == '0') {
			return 0, errors.Newf(errors.ErrPathInvalid, "invalid array index %q", tok)
		}
		i, err := strconv.Atoi(tok)
		if err != nil || i < 0 {
			return 0, errors.Newf(errors.ErrPathInvalid, "invalid array index %q", tok)
		}
		if i >= len(n.Content) {
			return 0, errors.Newf(errors.ErrPathNotFound, "index %d out of range (length %d)", i, len(n.Content))
		}
		return i, nil
	}

	return 0, errors.Newf(errors.ErrPathNotFound, "cannot descend into a scalar with %q", tok)
}

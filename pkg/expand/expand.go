// Package expand multiplies template fragments once per identifier.
//
// It has three operations. ContainsToken reports whether a fragment mentions
// the placeholder token. Substitute replaces the token inside a document.
// Expand turns a list of fragments into the list with every token-bearing
// fragment repeated once per identifier.
//
// Substitution is structural: only string scalars and mapping keys are
// rewritten, so a replacement value can never change the shape of the
// document or the type of a scalar. The functions are pure; inputs are never
// modified and untouched subtrees are shared between input and output.
package expand

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/labws/pkg/document"
	"github.com/arthur-debert/labws/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ContainsToken reports whether token occurs in any string value or mapping
// key of fragment, at any depth. It is false exactly when Substitute would
// return fragment unchanged.
func ContainsToken(fragment *yaml.Node, token string) bool {
	if fragment == nil || token == "" {
		return false
	}
	switch fragment.Kind {
	case yaml.ScalarNode:
		return matches(fragment, token)
	case yaml.DocumentNode, yaml.SequenceNode, yaml.MappingNode:
		for _, c := range fragment.Content {
			if ContainsToken(c, token) {
				return true
			}
		}
	}
	return false
}

func matches(n *yaml.Node, token string) bool {
	return n.ShortTag() == document.TagStr && strings.Contains(n.Value, token)
}

// Substitute returns doc with every occurrence of token replaced by
// replacement. When token does not occur, doc itself is returned.
func Substitute(doc *yaml.Node, token, replacement string) (*yaml.Node, error) {
	if token == "" {
		return nil, errors.New(errors.ErrTokenReplacement, "token must not be empty")
	}
	if !utf8.ValidString(replacement) {
		return nil, errors.Newf(errors.ErrTokenReplacement, "replacement %q is not valid UTF-8", replacement)
	}
	if err := document.Check(doc); err != nil {
		return nil, err
	}
	return substitute(doc, token, replacement, document.Pointer{})
}

func substitute(n *yaml.Node, token, replacement string, at document.Pointer) (*yaml.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if !matches(n, token) {
			return n, nil
		}
		out := *n
		out.Value = strings.ReplaceAll(n.Value, token, replacement)
		return &out, nil

	case yaml.DocumentNode, yaml.SequenceNode:
		var content []*yaml.Node
		for i, c := range n.Content {
			child := at
			if n.Kind == yaml.SequenceNode {
				// a document node wraps its value without adding a level
				child = at.Append(strconv.Itoa(i))
			}
			nc, err := substitute(c, token, replacement, child)
			if err != nil {
				return nil, err
			}
			content = cow(content, n.Content, i, c, nc)
		}
		return withContent(n, content), nil

	case yaml.MappingNode:
		var content []*yaml.Node
		keysChanged := false
		for i := 0; i < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			nk, err := substitute(k, token, replacement, at)
			if err != nil {
				return nil, err
			}
			nv, err := substitute(v, token, replacement, at.Append(k.Value))
			if err != nil {
				return nil, err
			}
			keysChanged = keysChanged || nk != k
			content = cow(content, n.Content, i, k, nk)
			content = cow(content, n.Content, i+1, v, nv)
		}
		if keysChanged {
			if err := uniqueKeys(content, at); err != nil {
				return nil, err
			}
		}
		return withContent(n, content), nil
	}

	return n, nil
}

// cow records a replaced child, copying the original content slice the
// first time anything changes.
func cow(content, orig []*yaml.Node, i int, old, repl *yaml.Node) []*yaml.Node {
	if content == nil {
		if old == repl {
			return nil
		}
		content = make([]*yaml.Node, len(orig))
		copy(content, orig)
	}
	content[i] = repl
	return content
}

func withContent(n *yaml.Node, content []*yaml.Node) *yaml.Node {
	if content == nil {
		return n
	}
	out := *n
	out.Content = content
	return &out
}

func uniqueKeys(content []*yaml.Node, at document.Pointer) error {
	seen := make(map[string]bool, len(content)/2)
	for i := 0; i < len(content); i += 2 {
		key := content[i].Value
		if seen[key] {
			return errors.Newf(errors.ErrTokenReplacement, "substitution makes key %q collide with an existing key", key).
				WithDetail("path", at.String())
		}
		seen[key] = true
	}
	return nil
}

// Expand returns fragments with every token-bearing fragment replaced by one
// substituted copy per identifier, in identifier order. Fragments without the
// token are passed through once, unchanged. Relative order is preserved.
//
// A token-bearing fragment with no identifiers to expand it with is an error
// rather than being silently dropped. Any error aborts the whole call.
func Expand(fragments []*yaml.Node, identifiers []string, token string) ([]*yaml.Node, error) {
	if token == "" {
		return nil, errors.New(errors.ErrTokenReplacement, "token must not be empty")
	}

	out := make([]*yaml.Node, 0, len(fragments))
	for i, f := range fragments {
		if !ContainsToken(f, token) {
			out = append(out, f)
			continue
		}
		if len(identifiers) == 0 {
			return nil, errors.Newf(errors.ErrTokenReplacement, "fragment contains %q but there are no identifiers to expand it with", token).
				WithDetail("fragment", i)
		}
		for _, id := range identifiers {
			expanded, err := Substitute(f, token, id)
			if err != nil {
				err = errors.AddDetail(err, "fragment", i)
				return nil, errors.AddDetail(err, "identifier", id)
			}
			out = append(out, expanded)
		}
	}
	return out, nil
}

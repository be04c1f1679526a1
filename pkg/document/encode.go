package document

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/arthur-debert/labws/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EncodeJSON renders n as JSON indented by indent spaces (compact when
// indent is 0). Keys keep their document order, HTML characters are not
// escaped and no trailing newline is written, so the output matches what
// JavaScript's JSON.stringify(value, null, indent) produces.
func EncodeJSON(n *yaml.Node, indent int) ([]byte, error) {
	n = Unwrap(n)
	if err := Check(n); err != nil {
		return nil, err
	}

	var compact bytes.Buffer
	if err := writeJSON(&compact, n); err != nil {
		return nil, err
	}
	if indent <= 0 {
		return compact.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to indent JSON")
	}
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	return writeScalar(buf, n)
}

func writeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case TagStr:
		return writeString(buf, n.Value)
	case TagNull:
		buf.WriteString("null")
	case TagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return errors.Wrapf(err, errors.ErrSerialization, "invalid bool %q", n.Value)
		}
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case TagInt:
		s, err := intText(n)
		if err != nil {
			return errors.Wrapf(err, errors.ErrSerialization, "invalid integer %q", n.Value)
		}
		buf.WriteString(s)
	case TagFloat:
		var f float64
		if err := n.Decode(&f); err != nil {
			return errors.Wrapf(err, errors.ErrSerialization, "invalid float %q", n.Value)
		}
		data, err := json.Marshal(f)
		if err != nil {
			return errors.Wrapf(err, errors.ErrSerialization, "invalid float %q", n.Value)
		}
		buf.Write(data)
	default:
		return errors.Newf(errors.ErrSerialization, "unsupported tag %s", n.ShortTag())
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, errors.ErrSerialization, "failed to encode string")
	}
	// Encode always terminates the value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// EncodeYAML renders n as block-style YAML. Source styles and comments are
// dropped, so a JSON template comes out as YAML and template comments that
// mention the token are not carried into the output. Strings that would read
// as another type unquoted are still quoted.
func EncodeYAML(n *yaml.Node, indent int) ([]byte, error) {
	n = Unwrap(n)
	if err := Check(n); err != nil {
		return nil, err
	}
	if indent < 2 {
		indent = 2
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(plain(n)); err != nil {
		return nil, errors.Wrap(err, errors.ErrSerialization, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrSerialization, "failed to encode YAML")
	}
	return buf.Bytes(), nil
}

// plain returns a copy of n with styles and comments cleared. Tags are kept:
// yaml.v3 quotes a !!str scalar whose plain form would resolve to another
// tag, and quotes anything the emitter cannot write plain.
func plain(n *yaml.Node) *yaml.Node {
	out := *n
	out.Style = 0
	out.HeadComment, out.LineComment, out.FootComment = "", "", ""
	if n.Content != nil {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = plain(c)
		}
	}
	return &out
}

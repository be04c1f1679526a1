// Package document models the structured documents labws reads and writes.
//
// A document is a *yaml.Node tree from gopkg.in/yaml.v3. Unlike decoding into
// map[string]interface{}, a node tree keeps mapping key order, sequence order
// and the resolved tag of every scalar, which is what lets a template
// round-trip through labws without reordering keys or turning numbers into
// strings.
//
// Templates may be written in YAML or in JSON (JSON parses as YAML). Output is
// produced by EncodeJSON or EncodeYAML. Only plain data is representable:
// aliases, non-scalar keys, duplicate keys, non-finite floats and tags other
// than !!str, !!int, !!float, !!bool and !!null fail Check with a
// SERIALIZATION error.
//
// Locations inside a document are addressed with RFC 6901 JSON pointers
// (see Pointer), for example "/tasks/tasks" or "/folders/0/name".
package document

// Package workspace turns the lab workspace template into its artifacts.
//
// A Plan says which sequences of the template are expanded (as JSON
// pointers such as /tasks/tasks), with which token and lab identifiers,
// and which literal fix-ups run over the whole document afterwards. A
// Generator parses a template, applies a Plan, optionally checks the result
// against the embedded workspace schema and encodes the workspace and the
// header as output.Artifacts.
//
// The built-in template and header reproduce the files the labs have always
// shipped with: with the default plan the generated workspace is byte for
// byte the historical lzuoslab.code-workspace.
package workspace

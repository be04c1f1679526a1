// Package output puts generated artifacts on disk.
//
// A Writer works on an afero.Fs so it runs against the real filesystem in
// the CLI and against afero.MemMapFs in tests. WriteAll is all-or-nothing
// as far as staging goes: every artifact is first written to a temporary
// file next to its target, and only when all of them are staged are they
// renamed into place. Diff compares artifacts with what is on disk without
// writing anything.
package output

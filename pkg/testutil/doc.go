// Package testutil provides helpers shared by the labws tests.
//
// Key components:
//   - Isolate: points the user config and state directories at a temp dir
//     so tests never read the developer's own labws config or write logs
//     into their home
//   - MemoryFS: an afero memory filesystem pre-populated with files
//   - WriteFiles: the same on the real filesystem, under a temp root
//
// All test data should be defined inline. Each test gets its own
// directories and no state is shared between tests.
package testutil

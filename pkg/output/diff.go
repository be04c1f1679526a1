package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Status says how an artifact relates to the file on disk.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusChanged   Status = "changed"
	StatusMissing   Status = "missing"
)

// FileDiff is the comparison of one artifact with its file on disk.
type FileDiff struct {
	Artifact Artifact
	Status   Status
	// Patch is a line diff from the file on disk to the artifact. It is
	// empty unless Status is StatusChanged.
	Patch string
}

// Diff compares every artifact with the file at its path.
func (w *Writer) Diff(artifacts []Artifact) ([]FileDiff, error) {
	out := make([]FileDiff, 0, len(artifacts))
	for _, a := range artifacts {
		current, ok, err := w.Read(a.Path)
		if err != nil {
			return nil, errors.AddDetail(err, "artifact", a.Name)
		}
		d := FileDiff{Artifact: a}
		switch {
		case !ok:
			d.Status = StatusMissing
		case bytes.Equal(current, a.Data):
			d.Status = StatusUnchanged
		default:
			d.Status = StatusChanged
			d.Patch = LineDiff(a.Path, string(current), string(a.Data))
		}
		w.logger.Debug().Str("artifact", a.Name).Str("status", string(d.Status)).Msg("Compared artifact")
		out = append(out, d)
	}
	return out, nil
}

// Outdated returns the diffs whose status is not unchanged.
func Outdated(diffs []FileDiff) []FileDiff {
	var out []FileDiff
	for _, d := range diffs {
		if d.Status != StatusUnchanged {
			out = append(out, d)
		}
	}
	return out
}

// LineDiff renders a line-oriented diff from before to after. Removed lines
// start with "- ", added lines with "+ " and unchanged ones with two spaces.
func LineDiff(path, before, after string) string {
	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s (on disk)\n", path)
	fmt.Fprintf(&sb, "+++ %s (generated)\n", path)

	for _, diff := range diffs {
		lines := strings.Split(diff.Text, "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			switch diff.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString("- " + line + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString("+ " + line + "\n")
			case diffmatchpatch.DiffEqual:
				sb.WriteString("  " + line + "\n")
			}
		}
	}
	return sb.String()
}

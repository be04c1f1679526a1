package output

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/arthur-debert/labws/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultMode is used for artifacts that do not set one.
const DefaultMode os.FileMode = 0644

// Artifact is one generated file.
type Artifact struct {
	// Name identifies the artifact independently of where it is written,
	// e.g. "workspace" or "header".
	Name string
	Path string
	Data []byte
	Mode os.FileMode
}

func (a Artifact) mode() os.FileMode {
	if a.Mode == 0 {
		return DefaultMode
	}
	return a.Mode
}

// Writer writes artifacts to a filesystem.
type Writer struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// NewWriter returns a Writer on fs.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{
		fs:     fs,
		logger: logging.GetLogger("output.writer"),
	}
}

// NewOsWriter returns a Writer on the real filesystem.
func NewOsWriter() *Writer {
	return NewWriter(afero.NewOsFs())
}

type staged struct {
	artifact Artifact
	tmp      string
	backup   string // previous target, moved aside while committing
}

// WriteAll writes every artifact, or none of them. Every artifact is first
// staged to a temp file next to its target. Targets are then replaced one by
// one, with the previous file moved aside; if a replacement fails, the
// targets already replaced are restored before the error is returned.
func (w *Writer) WriteAll(artifacts []Artifact) error {
	done := logging.LogOperationStart(w.logger, "write")
	defer done()

	var pending []*staged
	for _, a := range artifacts {
		tmp, err := w.stage(a)
		if err != nil {
			w.discard(pending)
			return err
		}
		pending = append(pending, &staged{artifact: a, tmp: tmp})
	}

	for i, s := range pending {
		if err := w.commit(s); err != nil {
			w.rollback(pending[:i])
			w.discard(pending[i:])
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to move %s into place", s.artifact.Path).
				WithDetail("artifact", s.artifact.Name)
		}
	}

	for _, s := range pending {
		if s.backup != "" {
			w.remove(s.backup)
		}
		w.logger.Info().
			Str("artifact", s.artifact.Name).
			Str("path", s.artifact.Path).
			Int("bytes", len(s.artifact.Data)).
			Msg("Wrote artifact")
	}
	return nil
}

// commit moves the staged file over its target. On failure the target is
// left as it was.
func (w *Writer) commit(s *staged) error {
	target := s.artifact.Path
	if _, err := w.fs.Stat(target); err == nil {
		backup := s.tmp + ".orig"
		if err := w.fs.Rename(target, backup); err != nil {
			return err
		}
		s.backup = backup
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := w.fs.Rename(s.tmp, target); err != nil {
		if s.backup != "" {
			if rerr := w.fs.Rename(s.backup, target); rerr != nil {
				w.logger.Error().Err(rerr).Str("path", target).Msg("Failed to restore previous file")
			}
			s.backup = ""
		}
		return err
	}
	return nil
}

// rollback puts back the previous content of committed targets.
func (w *Writer) rollback(committed []*staged) {
	for i := len(committed) - 1; i >= 0; i-- {
		s := committed[i]
		target := s.artifact.Path
		if s.backup == "" {
			w.remove(target)
			continue
		}
		if err := w.fs.Rename(s.backup, target); err != nil {
			w.logger.Error().Err(err).Str("path", target).Str("backup", s.backup).
				Msg("Failed to restore previous file")
		}
	}
}

// discard removes staged files that were never committed.
func (w *Writer) discard(pending []*staged) {
	for _, s := range pending {
		w.remove(s.tmp)
	}
}

func (w *Writer) remove(path string) {
	if err := w.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		w.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove file")
	}
}

func (w *Writer) stage(a Artifact) (string, error) {
	dir := filepath.Dir(a.Path)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
			WithDetail("artifact", a.Name)
	}

	f, err := afero.TempFile(w.fs, dir, "."+filepath.Base(a.Path)+".tmp-*")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to stage %s", a.Path).
			WithDetail("artifact", a.Name)
	}
	tmp := f.Name()

	fail := func(err error) (string, error) {
		_ = f.Close()
		_ = w.fs.Remove(tmp)
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to stage %s", a.Path).
			WithDetail("artifact", a.Name)
	}

	if _, err := f.Write(a.Data); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return fail(err)
	}
	if err := w.fs.Chmod(tmp, a.mode()); err != nil {
		return fail(err)
	}

	w.logger.Debug().Str("artifact", a.Name).Str("tmp", tmp).Msg("Staged artifact")
	return tmp, nil
}

// Read returns the current content of path, or nil and false if there is
// no such file.
func (w *Writer) Read(path string) ([]byte, bool, error) {
	data, err := afero.ReadFile(w.fs, path)
	if err == nil {
		return data, true, nil
	}
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	return nil, false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
}

// UpToDate reports whether a matches the file on disk byte for byte.
func (w *Writer) UpToDate(a Artifact) (bool, error) {
	current, ok, err := w.Read(a.Path)
	if err != nil || !ok {
		return false, err
	}
	return bytes.Equal(current, a.Data), nil
}

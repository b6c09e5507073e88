// Package writer puts generated files on disk. Every file goes through
// EnsureFile, which applies the conflict policy: new files are created,
// identical files are left alone, and differing files are overwritten only
// when forced or confirmed. Otherwise the existing file is kept and a warning
// is recorded.
package writer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	terrors "github.com/templer-labs/templer/internal/errors"
	"github.com/templer-labs/templer/internal/logging"
)

const dirPerm fs.FileMode = 0o755

type Action string

const (
	ActionMkdir     Action = "mkdir"
	ActionCreate    Action = "create"
	ActionOverwrite Action = "overwrite"
	ActionIdentical Action = "identical"
	ActionKeep      Action = "keep"
)

// Result records what happened to one path.
type Result struct {
	Action Action
	Path   string
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string, def bool) (bool, error)
}

type Options struct {
	// Overwrite replaces differing files without asking.
	Overwrite bool
	// Interactive asks before replacing a differing file. Needs Confirm.
	Interactive bool
	Confirm     Confirmer
	// Simulate reports actions without touching disk.
	Simulate bool
	// Verbose reports every action, not only conflicts.
	Verbose bool
	// Base is trimmed from reported paths.
	Base string
	Out  io.Writer
	FS   FS
}

// Writer applies the conflict policy and remembers what it did.
type Writer struct {
	o        Options
	fs       FS
	log      zerolog.Logger
	results  []Result
	warnings []string
}

// New returns a Writer for o. Without an FS it writes to the real
// filesystem; without Out its messages are discarded.
func New(o Options) *Writer {
	if o.Out == nil {
		o.Out = io.Discard
	}
	fsys := o.FS
	if fsys == nil {
		fsys = OSFS{}
	}
	return &Writer{o: o, fs: fsys, log: logging.Get("writer")}
}

// Results lists every action taken, in order.
func (w *Writer) Results() []Result { return w.results }

// Warnings lists the conflicts that were left unresolved.
func (w *Writer) Warnings() []string { return w.warnings }

// EnsureDir creates dir and its parents if missing.
func (w *Writer) EnsureDir(dir string) error {
	info, err := w.fs.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return terrors.Newf(terrors.ErrFileWrite, "%s exists and is not a directory", dir)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return terrors.Wrapf(err, terrors.ErrFileWrite, "checking %s", dir)
	}
	if !w.o.Simulate {
		if err := w.fs.MkdirAll(dir, dirPerm); err != nil {
			return terrors.Wrapf(err, terrors.ErrFileWrite, "creating %s", dir)
		}
	}
	w.record(ActionMkdir, dir)
	return nil
}

// EnsureFile makes path hold content, following the conflict policy.
// A conflict that is not resolved by overwriting is not an error.
func (w *Writer) EnsureFile(ctx context.Context, path string, content []byte, mode fs.FileMode) (Action, error) {
	if mode == 0 {
		mode = 0o644
	}
	existing, err := w.fs.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := w.EnsureDir(filepath.Dir(path)); err != nil {
			return "", err
		}
		return w.write(ActionCreate, path, content, mode)
	case err != nil:
		return "", terrors.Wrapf(err, terrors.ErrFileWrite, "reading %s", path)
	}

	if bytes.Equal(existing, content) {
		w.record(ActionIdentical, path)
		return ActionIdentical, nil
	}

	if w.o.Overwrite {
		return w.write(ActionOverwrite, path, content, mode)
	}

	rel := w.rel(path)
	fmt.Fprintf(w.o.Out, "%s differs from the content it would be given:\n", rel)
	fmt.Fprint(w.o.Out, ContextDiff(rel, existing, content))

	if w.o.Interactive && w.o.Confirm != nil {
		ok, err := w.o.Confirm.Confirm(ctx, fmt.Sprintf("Overwrite %s with new content?", rel), false)
		if err != nil {
			return "", err
		}
		if ok {
			return w.write(ActionOverwrite, path, content, mode)
		}
	}

	w.warnings = append(w.warnings, fmt.Sprintf("kept existing %s (content differs; use --overwrite to replace it)", rel))
	w.record(ActionKeep, path)
	return ActionKeep, nil
}

func (w *Writer) write(act Action, path string, content []byte, mode fs.FileMode) (Action, error) {
	if !w.o.Simulate {
		if err := WriteAtomic(w.fs, path, content, mode); err != nil {
			return "", terrors.Wrapf(err, terrors.ErrFileWrite, "writing %s", path)
		}
	}
	w.record(act, path)
	return act, nil
}

func (w *Writer) record(act Action, path string) {
	w.results = append(w.results, Result{Action: act, Path: path})
	w.log.Debug().Str("action", string(act)).Str("path", path).Bool("simulate", w.o.Simulate).Msg("write")
	if !w.o.Verbose || act == ActionIdentical {
		return
	}
	prefix := ""
	if w.o.Simulate {
		prefix = "dry-run: "
	}
	fmt.Fprintf(w.o.Out, "%s%-9s %s\n", prefix, act, w.rel(path))
}

func (w *Writer) rel(path string) string {
	if w.o.Base == "" {
		return path
	}
	if r, err := filepath.Rel(w.o.Base, path); err == nil {
		return r
	}
	return path
}

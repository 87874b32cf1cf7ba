// Package inbox imports envelope files dropped into a directory.
//
// Every *.enc file that is present when the watcher starts, or that is later
// created or written, is imported once and then moved to <dir>/imported.
// A file that does not yet decode as an envelope is assumed to be still in
// flight and is retried on its next write event. Files rejected for any
// other reason stay where they are.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/client/services"
	"github.com/dmitrijs2005/gophinventory/internal/envelope"
	"github.com/dmitrijs2005/gophinventory/internal/filex"
	"github.com/dmitrijs2005/gophinventory/internal/logging"
	"github.com/fsnotify/fsnotify"
)

const (
	Ext         = ".enc"
	ImportedDir = "imported"
)

// Importer is the part of services.TransferService the watcher needs.
type Importer interface {
	ImportFrom(ctx context.Context, src services.Source, ref string) (models.Item, error)
}

// Result reports the outcome of one import attempt.
type Result struct {
	Path string
	Item models.Item
	Err  error
}

type Watcher struct {
	dir      string
	importer Importer
	log      logging.Logger

	// OnResult, if set, is called after every attempt that was not a retry.
	OnResult func(Result)

	// done holds paths that were imported but could not be moved away.
	done map[string]struct{}
}

func New(dir string, importer Importer, log logging.Logger) *Watcher {
	return &Watcher{
		dir:      dir,
		importer: importer,
		log:      log.With("component", "inbox", "dir", dir),
		done:     map[string]struct{}{},
	}
}

// Run watches the directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := filex.EnsureDir(w.dir); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.log.Info(ctx, "watching for envelopes")

	if err := w.scan(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) {
				w.handle(ctx, ev.Name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error(ctx, "watch error", "error", err)
		}
	}
}

func (w *Watcher) scan(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", w.dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			w.handle(ctx, filepath.Join(w.dir, e.Name()))
		}
	}
	return nil
}

func wanted(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Ext) && !filex.IsTempName(path)
}

func (w *Watcher) handle(ctx context.Context, path string) {
	if !wanted(path) {
		return
	}
	if _, ok := w.done[path]; ok {
		return
	}
	if fi, err := os.Stat(path); err != nil || fi.IsDir() {
		// Already moved away, or not a regular file.
		return
	}

	item, err := w.importer.ImportFrom(ctx, filex.Dir{}, path)
	switch {
	case errors.Is(err, envelope.ErrMalformedEnvelope):
		w.log.Debug(ctx, "envelope incomplete, waiting for next write", "file", path)
		return
	case errors.Is(err, os.ErrNotExist):
		return
	case err != nil:
		w.log.Error(ctx, "import failed", "file", path, "error", err)
		w.report(Result{Path: path, Err: err})
		return
	}

	w.log.Info(ctx, "imported", "file", path, "id", item.ID)

	if _, err := filex.MoveInto(path, filepath.Join(w.dir, ImportedDir)); err != nil {
		w.log.Error(ctx, "could not move imported file", "file", path, "error", err)
		w.done[path] = struct{}{}
	}
	w.report(Result{Path: path, Item: item})
}

func (w *Watcher) report(r Result) {
	if w.OnResult != nil {
		w.OnResult(r)
	}
}

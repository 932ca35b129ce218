package config

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	kartoerrors "github.com/karto-app/karto/pkg/errors"
)

// Watch re-resolves the configuration in dir whenever karto.yaml is
// written, created, renamed or removed, and passes the result to onChange.
// It blocks until ctx is cancelled. The directory is watched rather than
// the file so editors that save by renaming are seen.
func Watch(ctx context.Context, dir string, logger *log.Logger, onChange func(*Resolved, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return kartoerrors.New("config.Watch", kartoerrors.KindConfig, err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return kartoerrors.New("config.Watch", kartoerrors.KindConfig, err)
	}
	if logger == nil {
		logger = log.Default().WithPrefix("config")
	}
	target := filepath.Join(dir, FileName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			logger.Debug("config changed", "op", ev.Op.String(), "path", ev.Name)
			onChange(Resolve(dir))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watch error", "err", err)
		}
	}
}

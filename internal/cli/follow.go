package cli

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/stenoboard/pkg/errors"
)

// layoutChangedMsg reports that the followed layout file was written.
type layoutChangedMsg struct {
	path string
}

// followErrMsg reports a watcher failure.
type followErrMsg struct {
	err error
}

// followLayout reports writes to path through send until ctx ends or the
// returned close function is called. The parent directory is watched so
// editors that replace the file on save are still seen.
func followLayout(ctx context.Context, path string, send func(tea.Msg)) (func() error, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayoutPath, err, "resolve %s", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, errors.Wrap(errors.ErrCodeIO, err, "watch %s", filepath.Dir(abs))
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !(ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create)) {
					continue
				}
				send(layoutChangedMsg{path: abs})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				send(followErrMsg{err: err})
			}
		}
	}()
	return w.Close, nil
}

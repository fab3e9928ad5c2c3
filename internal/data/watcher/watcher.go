// Package watcher notifies when a recording file changes on disk, so tools
// can re-render a live view of a capture in progress.
package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-input-replay/internal/util"
)

// RecordingWatcher watches a single recording file for writes. The parent
// directory is watched so the file may be created or atomically replaced
// after the watcher starts.
type RecordingWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan struct{}
}

// New starts watching the recording at path.
func New(path string) (*RecordingWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	rw := &RecordingWatcher{
		watcher: fsw,
		path:    abs,
		changes: make(chan struct{}, 1),
	}

	go rw.processEvents()

	return rw, nil
}

// Changes signals once per observed modification. Notifications are
// coalesced, never buffered beyond one.
func (rw *RecordingWatcher) Changes() <-chan struct{} {
	return rw.changes
}

// Close stops watching.
func (rw *RecordingWatcher) Close() error {
	return rw.watcher.Close()
}

func (rw *RecordingWatcher) processEvents() {
	for {
		select {
		case event, ok := <-rw.watcher.Events:
			if !ok {
				return
			}

			if event.Name != rw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			select {
			case rw.changes <- struct{}{}:
			default:
			}

		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("recording watch error: " + err.Error())
		}
	}
}

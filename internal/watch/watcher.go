// Package watch monitors the file backing the current buffer so the editor
// can warn when another process changes it on disk. The parent directory is
// watched rather than the file itself, since editors and compilers commonly
// replace files instead of writing in place.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"tedit/internal/log"

	"github.com/fsnotify/fsnotify"
)

// FileModification represents a change to the watched file
type FileModification struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors the open file for on-disk changes using fsnotify
type Watcher struct {
	// Channel delivering modifications of the watched file
	fileModChan chan FileModification

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the watched path
	mutex sync.RWMutex

	// Absolute path of the file being tracked; empty means none
	path string

	// Directory currently registered with fsnotify
	watchedDir string

	// Whether the event loop is running
	running bool
}

// New creates a file watcher. No file is tracked until SetFile is called.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fileModChan: make(chan FileModification, 10),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// SetFile switches the watcher to track the given file, replacing any
// previously tracked one. An empty path stops tracking.
func (w *Watcher) SetFile(path string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if path == "" {
		if w.watchedDir != "" {
			_ = w.fsWatcher.Remove(w.watchedDir)
			w.watchedDir = ""
		}
		w.path = ""
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	if dir != w.watchedDir {
		if w.watchedDir != "" {
			_ = w.fsWatcher.Remove(w.watchedDir)
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			w.watchedDir = ""
			w.path = ""
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		w.watchedDir = dir
	}
	w.path = abs
	log.LogWithFields(log.F("file", abs)).Debug("watching file")
	return nil
}

// FileChannel returns the channel that delivers file modification events
func (w *Watcher) FileChannel() <-chan FileModification {
	return w.fileModChan
}

// Start begins the event loop delivering changes to the tracked file
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.mutex.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if !w.tracks(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				mod := FileModification{
					Path:      event.Name,
					Op:        event.Op,
					Timestamp: time.Now(),
				}
				select {
				case w.fileModChan <- mod:
				default:
					// Drop rather than block the fsnotify goroutine.
				}
			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.Warnf("watcher error: %v", err)
			case <-w.stopChan:
				return
			}
		}
	}()
	return nil
}

func (w *Watcher) tracks(name string) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	if w.path == "" {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.path
}

// Stop halts the event loop and releases the fsnotify watcher
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopChan)
	_ = w.fsWatcher.Close()
}

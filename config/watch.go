package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the file must stay quiet before it is re-read; editors
// and os.WriteFile produce several events per save.
const settle = 100 * time.Millisecond

// Tuning is the part of the config that may change while the game runs.
type Tuning struct {
	LinearFriction  float64
	AngularFriction float64
}

func (c *Config) Tuning() Tuning {
	return Tuning{
		LinearFriction:  c.Physics.LinearFriction,
		AngularFriction: c.Physics.AngularFriction,
	}
}

// Watcher re-reads a config file when it changes and delivers the new tuning
// on Updates. Consumers drain Updates between frames.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Updates chan Tuning
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The containing directory is watched so that
// files replaced by rename are still seen.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		Updates: make(chan Tuning, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(settle)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

func (w *Watcher) reload() {
	c, err := LoadFile(w.path)
	if err != nil {
		w.report(err)
		return
	}
	select {
	case w.Updates <- c.Tuning():
	case <-w.closeCh:
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

package main

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// sceneWatcher calls onChange after the scene file is written, created or
// renamed into place. Events arriving within the debounce interval are
// coalesced into one call.
type sceneWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
	onError  func(error)
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newSceneWatcher(path string, debounce time.Duration, onChange func(), onError func(error)) (*sceneWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors that save by rename replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = watchDebounce
	}
	sw := &sceneWatcher{
		watcher:  w,
		path:     path,
		debounce: debounce,
		onChange: onChange,
		onError:  onError,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go sw.loop()
	return sw, nil
}

// Stop ends the watch loop and waits for it to exit.
func (sw *sceneWatcher) Stop() {
	close(sw.stopCh)
	<-sw.doneCh
}

const sceneOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

func (sw *sceneWatcher) matches(ev fsnotify.Event) bool {
	if ev.Op&sceneOps == 0 {
		return false
	}
	return filepath.Base(ev.Name) == filepath.Base(sw.path)
}

func (sw *sceneWatcher) loop() {
	defer close(sw.doneCh)
	defer func() {
		_ = sw.watcher.Close()
	}()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-sw.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !sw.matches(ev) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(sw.debounce)
			fire = timer.C
		case <-fire:
			timer, fire = nil, nil
			sw.onChange()
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			if sw.onError != nil {
				sw.onError(err)
			}
		}
	}
}

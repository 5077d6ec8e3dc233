package viewer

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DebounceDelay is how long Watch waits for writes to settle before reloading.
var DebounceDelay = 100 * time.Millisecond

// debouncer coalesces bursts of triggers into one call of fn.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func()
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Watch calls reload every time the file at path is written or replaced,
// until ctx is done. The parent directory is watched so editors that save by
// rename are seen too.
func Watch(ctx context.Context, log logrus.FieldLogger, path string, reload func()) error {
	if log == nil {
		log = discard()
	}
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer notify.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := notify.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	log.Debugf("monitoring path '%v'", abs)

	d := &debouncer{delay: DebounceDelay, fn: reload}
	defer d.stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug("terminating watcher")
			return nil
		case event, ok := <-notify.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				log.Debugf("watcher got event: %v", event)
				d.trigger()
			}
		case err, ok := <-notify.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watcher got error: %v", err)
		}
	}
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

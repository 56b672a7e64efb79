package status

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrClosed = errors.New("watcher is closed")

// Watcher polls sources and reports when their status changes.
type Watcher struct {
	killSwitch func()
	ctx        context.Context
	changes    chan Event
	wg         sync.WaitGroup
	closer     sync.Once
	mu         sync.Mutex // guards closed and wg.Add
	closed     bool
}

func NewWatcher() *Watcher {
	log.Debug("Initializing the watcher...")
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		ctx:        ctx,
		killSwitch: cancel,
		changes:    make(chan Event, 10),
	}
}

func (w *Watcher) Changes() <-chan Event {
	return w.changes
}

// Close stops all polling and closes the changes channel.
func (w *Watcher) Close() error {
	w.closer.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()

		w.killSwitch()
		w.wg.Wait()
		close(w.changes)
	})
	return nil
}

// AddWatch polls s right away and then every interval. It returns ErrClosed
// once the watcher has been closed.
func (w *Watcher) AddWatch(s Source, interval time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		log.Infof("Starting to watch %s every %v", s.Name(), interval)
		t := time.NewTicker(interval)
		defer t.Stop()
		last := ""

		for {
			status, err := s.Status(w.ctx)
			if err != nil {
				log.Warnf("error when watching %s: %v", s.Name(), err)
			} else if status != last {
				log.Infof("%s changed from %q to %q", s.Name(), last, status)
				last = status
				select {
				case w.changes <- Event{Source: s.Name(), Status: status}:
				case <-w.ctx.Done():
				}
			} else {
				log.Debugf("%s is still %q", s.Name(), status)
			}

			select {
			case <-t.C:
				// poll again
			case <-w.ctx.Done():
				log.Infof("Stopping watch of %s", s.Name())
				return
			}
		}
	}()
	return nil
}

// Show prints every event until ctx is done or events is closed.
func Show(ctx context.Context, p Printer, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			p.Print(e.Source, e.Status)
		}
	}
}

package main

import (
	"os"
	"sync"
	"time"

	"github.com/callebjorkell/status-lcd/internal/lcd"
	log "github.com/sirupsen/logrus"
)

// watchdogKick is well inside the shortest common device timeout of a few seconds.
const watchdogKick = time.Second

// fileWatchdog kicks a Linux watchdog device such as /dev/watchdog.
type fileWatchdog struct {
	mu sync.Mutex
	f  *os.File
}

func openWatchdog(path string) (*fileWatchdog, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, err
	}
	log.Infof("Using watchdog %s", path)
	return &fileWatchdog{f: f}, nil
}

func (w *fileWatchdog) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.f.Write([]byte{0}); err != nil {
		log.Warn("Unable to reset watchdog: ", err)
	}
}

// Close disarms the watchdog with the magic close character before closing.
func (w *fileWatchdog) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.f.Write([]byte("V")); err != nil {
		log.Warn("Unable to disarm watchdog: ", err)
	}
	return w.f.Close()
}

// keepAlive resets w every interval until the returned stop function is
// called. stop returns once the last reset is done.
func keepAlive(w lcd.Watchdog, interval time.Duration) (stop func()) {
	done := make(chan struct{})
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Reset()
			case <-done:
				return
			}
		}
	}()

	once := sync.Once{}
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

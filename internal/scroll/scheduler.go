package scroll

import (
	"sync"
	"time"
)

// Task is a handle on a repeating scheduled function.
type Task interface {
	// Cancel stops future runs. It does not wait for a run in progress and
	// may be called from inside the scheduled function. Idempotent.
	Cancel()
}

// Scheduler runs fn every interval until the returned Task is cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// TickerScheduler runs each task on its own goroutine driven by a
// time.Ticker.
type TickerScheduler struct{}

// Every starts a goroutine that calls fn once per interval.
func (TickerScheduler) Every(interval time.Duration, fn func()) Task {
	t := &tickerTask{stop: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				// Both cases may be ready; cancellation wins.
				select {
				case <-t.stop:
					return
				default:
				}
				fn()
			}
		}
	}()
	return t
}

type tickerTask struct {
	once sync.Once
	stop chan struct{}
}

func (t *tickerTask) Cancel() {
	t.once.Do(func() { close(t.stop) })
}

package appstate

import (
	"sync"
	"time"
)

// expiryTimer fires send once after the latest Reset. After Stop returns,
// send is never called again.
type expiryTimer struct {
	mu      sync.Mutex
	t       *time.Timer
	stopped bool
	send    func()
}

func newExpiryTimer(send func()) *expiryTimer {
	return &expiryTimer{send: send}
}

// Reset schedules send after d, replacing any pending call.
func (e *expiryTimer) Reset(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	if e.t != nil {
		e.t.Stop()
	}
	e.t = time.AfterFunc(d, e.fire)
}

func (e *expiryTimer) fire() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.stopped {
		e.send()
	}
}

// Stop cancels the pending call and disables further ones.
func (e *expiryTimer) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	if e.t != nil {
		e.t.Stop()
	}
}

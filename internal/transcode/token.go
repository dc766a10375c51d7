package transcode

import (
	"sync"
	"syscall"
)

// CancelToken carries a cooperative stop request across goroutines. Stop is
// one-way and idempotent; once requested it never resets.
type CancelToken struct {
	mu      sync.Mutex
	stopped bool
	proc    ProcessHandle
}

// NewCancelToken returns a token with no stop requested.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// RequestStop flips the stop flag and signals the attached process when one
// is running. Signalling an already-exited process is a no-op.
func (t *CancelToken) RequestStop() {
	t.mu.Lock()
	proc := t.proc
	t.stopped = true
	t.mu.Unlock()

	if proc != nil {
		_ = proc.Signal(syscall.SIGTERM)
	}
}

// Stopped reports whether a stop has been requested.
func (t *CancelToken) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// attach registers the live process so RequestStop can signal it. When the
// stop already happened the process is signalled immediately.
func (t *CancelToken) attach(proc ProcessHandle) {
	t.mu.Lock()
	t.proc = proc
	stopped := t.stopped
	t.mu.Unlock()

	if stopped && proc != nil {
		_ = proc.Signal(syscall.SIGTERM)
	}
}

// detach clears the process reference after the command exits.
func (t *CancelToken) detach() {
	t.mu.Lock()
	t.proc = nil
	t.mu.Unlock()
}

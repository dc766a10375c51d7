package transcode

import (
	"sync"
	"testing"
)

func TestCancelTokenIdempotent(t *testing.T) {
	token := NewCancelToken()
	if token.Stopped() {
		t.Fatal("new token must not be stopped")
	}
	token.RequestStop()
	token.RequestStop()
	if !token.Stopped() {
		t.Fatal("token must report stopped")
	}
}

func TestCancelTokenSignalsAttachedProcess(t *testing.T) {
	token := NewCancelToken()
	proc := &fakeProcess{}
	token.attach(proc)

	token.RequestStop()
	if proc.signalCount() != 1 {
		t.Fatalf("signal count = %d, want 1", proc.signalCount())
	}

	token.detach()
	token.RequestStop()
	if proc.signalCount() != 1 {
		t.Fatal("detached process must not be signalled again")
	}
}

func TestCancelTokenAttachAfterStopSignalsImmediately(t *testing.T) {
	token := NewCancelToken()
	token.RequestStop()

	proc := &fakeProcess{}
	token.attach(proc)
	if proc.signalCount() != 1 {
		t.Fatalf("signal count = %d, want 1", proc.signalCount())
	}
}

func TestCancelTokenConcurrentStops(t *testing.T) {
	token := NewCancelToken()
	proc := &fakeProcess{}
	token.attach(proc)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token.RequestStop()
		}()
	}
	wg.Wait()

	if !token.Stopped() {
		t.Fatal("token must report stopped")
	}
}

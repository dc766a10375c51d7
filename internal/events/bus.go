package events

import "sync"

// ProgressKind distinguishes per-file progress from whole-batch progress.
type ProgressKind string

const (
	// ProgressFile carries the coarse completion signal for the job in flight.
	ProgressFile ProgressKind = "file"
	// ProgressOverall carries the count of jobs processed so far.
	ProgressOverall ProgressKind = "overall"
)

// LogEvent is one user-facing line on the log channel. Done marks batch
// completion; Stopped qualifies a Done event as user-cancelled.
type LogEvent struct {
	Message string
	Done    bool
	Stopped bool
}

// ProgressEvent is one update on the progress channel.
type ProgressEvent struct {
	Kind  ProgressKind
	Value int
}

// Bus is the multiple-producer/single-consumer event fan-in for one batch
// run. All channels preserve insertion order and are unbounded.
type Bus struct {
	mu       sync.Mutex
	log      []LogEvent
	debug    []string
	progress []ProgressEvent
}

// NewBus constructs an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Log appends a user-facing line.
func (b *Bus) Log(message string) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.log = append(b.log, LogEvent{Message: message})
	b.mu.Unlock()
}

// Done appends the tagged batch-completion event to the log channel.
func (b *Bus) Done(stopped bool) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.log = append(b.log, LogEvent{Done: true, Stopped: stopped})
	b.mu.Unlock()
}

// Debug appends a raw diagnostic line.
func (b *Bus) Debug(message string) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.debug = append(b.debug, message)
	b.mu.Unlock()
}

// FileProgress publishes the coarse completion value for the current job.
func (b *Bus) FileProgress(value int) {
	b.publishProgress(ProgressEvent{Kind: ProgressFile, Value: value})
}

// OverallProgress publishes the number of jobs processed so far.
func (b *Bus) OverallProgress(value int) {
	b.publishProgress(ProgressEvent{Kind: ProgressOverall, Value: value})
}

func (b *Bus) publishProgress(evt ProgressEvent) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.progress = append(b.progress, evt)
	b.mu.Unlock()
}

// DrainLog returns and removes all buffered log events. Never blocks.
func (b *Bus) DrainLog() []LogEvent {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.log
	b.log = nil
	return out
}

// DrainDebug returns and removes all buffered debug lines. Never blocks.
func (b *Bus) DrainDebug() []string {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.debug
	b.debug = nil
	return out
}

// DrainProgress returns and removes all buffered progress events. Never blocks.
func (b *Bus) DrainProgress() []ProgressEvent {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.progress
	b.progress = nil
	return out
}

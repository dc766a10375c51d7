// Package events carries batch run events from the orchestrator and worker
// to a polling consumer.
//
// A Bus owns three ordered, unbounded FIFO channels: log lines for the user,
// debug lines mirroring raw tool output, and progress updates. Producers may
// write from any goroutine; a single consumer drains each channel without
// blocking. Batch completion travels as a tagged event on the log channel so
// it can never be confused with an ordinary line of matching text.
package events

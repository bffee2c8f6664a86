package session

import "time"

// Status captures a file's progress through a session.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates a dispatch pass is in flight.
	StatusWorking Status = "working"
	// StatusDone indicates the pass finished and results are final.
	StatusDone Status = "done"
	// StatusCancelled indicates the pass was cut short by cancellation.
	StatusCancelled Status = "cancelled"
)

// Event reports per-file progress to an observing UI. Index is the
// tree's position in the session input; two trees may declare the same
// path, so observers key on Index, not Path.
type Event struct {
	Index       int
	Path        string
	Status      Status
	Diagnostics int
	CacheHit    bool
	Elapsed     time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe
// for concurrent calls from session workers.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

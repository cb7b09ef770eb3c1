// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync/atomic"
	"time"
)

// EventKind classifies a status event.
type EventKind uint8

const (
	// EventDeviceError reports a failed or lost output device. The engine
	// keeps rendering silence.
	EventDeviceError EventKind = iota + 1
	// EventVoiceStolen reports a play that restarted the oldest voice of a
	// saturated asset.
	EventVoiceStolen
	// EventClipped reports the first block of a run of clipped blocks.
	EventClipped
)

func (k EventKind) String() string {
	switch k {
	case EventDeviceError:
		return "device-error"
	case EventVoiceStolen:
		return "voice-stolen"
	case EventClipped:
		return "clipped"
	default:
		return "unknown"
	}
}

// Event is an asynchronous status report.
type Event struct {
	Kind EventKind
	ID   AssetID
	Err  error
	Time time.Time
}

// eventQueue never blocks the sender; events that do not fit are counted
// and dropped.
type eventQueue struct {
	ch      chan Event
	dropped atomic.Uint64
}

func newEventQueue(size int) *eventQueue {
	return &eventQueue{ch: make(chan Event, size)}
}

func (q *eventQueue) push(e Event) {
	if q == nil {
		return
	}
	e.Time = time.Now()

	select {
	case q.ch <- e:
	default:
		q.dropped.Add(1)
	}
}

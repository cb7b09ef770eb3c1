// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"
	"sync/atomic"
)

// State is the playback state of a Voice.
type State uint32

const (
	Idle State = iota
	Playing
	Looping
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Looping:
		return "looping"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Active reports whether a voice in state s is rendered.
func (s State) Active() bool { return s == Playing || s == Looping }

// The control word packs a generation counter in the high half and the
// State in the low half. Every bind bumps the generation, which tells the
// render side to rewind its cursor.
func pack(gen uint32, s State) uint64 { return uint64(gen)<<32 | uint64(s) }

func unpack(w uint64) (uint32, State) { return uint32(w >> 32), State(uint32(w)) }

// Voice is one playback slot. The control side changes it through bind,
// Stop and SetLoop; the render side only calls Advance.
type Voice struct {
	index int

	word  atomic.Uint64
	asset atomic.Pointer[Asset] // reserving asset, nil when free
	gain  atomic.Uint32         // float32 bits
	start atomic.Uint64         // pool sequence at last bind

	// published cursor, for observers
	pos atomic.Int64

	// owned by the render goroutine
	cursor int
	seen   uint32
}

// Index returns the slot position inside the pool.
func (v *Voice) Index() int { return v.index }

// State returns the current state.
func (v *Voice) State() State {
	_, s := unpack(v.word.Load())
	return s
}

// Asset returns the asset that reserved this slot, or nil.
func (v *Voice) Asset() *Asset { return v.asset.Load() }

// Cursor returns the frame offset published by the last Advance.
func (v *Voice) Cursor() int { return int(v.pos.Load()) }

// Volume returns the gain applied when mixing.
func (v *Voice) Volume() float32 { return math.Float32frombits(v.gain.Load()) }

// bind starts the voice from frame zero. It reports whether an active
// voice was taken over. The caller must own the reservation.
func (v *Voice) bind(volume float32, loop bool, seq uint64) (stolen bool) {
	state := Playing
	if loop {
		state = Looping
	}

	v.gain.Store(math.Float32bits(volume))
	v.start.Store(seq)

	for {
		old := v.word.Load()
		gen, s := unpack(old)
		if v.word.CompareAndSwap(old, pack(gen+1, state)) {
			if !s.Active() {
				if a := v.asset.Load(); a != nil {
					a.refs.Add(1)
				}
			}
			v.pos.Store(0)
			return s.Active()
		}
	}
}

// Stop silences the voice. It reports whether the voice was active;
// stopping an inactive voice does nothing.
func (v *Voice) Stop() bool {
	for {
		old := v.word.Load()
		gen, s := unpack(old)
		if !s.Active() {
			return false
		}
		if v.word.CompareAndSwap(old, pack(gen, Stopped)) {
			if a := v.asset.Load(); a != nil {
				a.refs.Add(-1)
			}
			v.pos.Store(0)
			return true
		}
	}
}

// SetLoop switches an active voice between Playing and Looping without
// moving its cursor. It reports whether the voice was active.
func (v *Voice) SetLoop(loop bool) bool {
	want := Playing
	if loop {
		want = Looping
	}

	for {
		old := v.word.Load()
		gen, s := unpack(old)
		if !s.Active() {
			return false
		}
		if s == want || v.word.CompareAndSwap(old, pack(gen, want)) {
			return true
		}
	}
}

// Advance renders the next len(dst)/channels frames of the bound buffer
// into dst and returns how many frames came from the buffer. The rest of
// dst is silence. A Playing voice that reaches the end of its buffer goes
// Idle; a Looping voice wraps its cursor to frame zero.
//
// Advance belongs to the render goroutine and does not allocate.
func (v *Voice) Advance(dst []float32) int {
	w := v.word.Load()
	gen, s := unpack(w)
	if gen != v.seen {
		v.seen = gen
		v.cursor = 0
	}

	a := v.asset.Load()
	if !s.Active() || a == nil {
		clear(dst)
		return 0
	}

	buf := a.buf
	if buf.Frames == 0 {
		clear(dst)
		if v.word.CompareAndSwap(w, pack(gen, Idle)) {
			a.refs.Add(-1)
		}
		return 0
	}

	ch := buf.Channels
	frames := len(dst) / ch
	written := 0

	for written < frames {
		if v.cursor >= buf.Frames {
			if s != Looping {
				break
			}
			v.cursor = 0
		}

		n := min(frames-written, buf.Frames-v.cursor)
		copy(dst[written*ch:(written+n)*ch], buf.Data[v.cursor*ch:(v.cursor+n)*ch])
		written += n
		v.cursor += n
	}
	clear(dst[written*ch:])

	if v.cursor >= buf.Frames && s == Looping {
		v.cursor = 0
	}
	if v.cursor >= buf.Frames && s == Playing {
		// Loses to a concurrent stop, rebind or SetLoop.
		if v.word.CompareAndSwap(w, pack(gen, Idle)) {
			a.refs.Add(-1)
		}
	}

	v.pos.Store(int64(v.cursor))
	return written
}

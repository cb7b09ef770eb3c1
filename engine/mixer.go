// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/ik5/lowlatency/utils"
)

// ErrQuiesceTimeout is returned when the render side did not finish its
// current block in time.
var ErrQuiesceTimeout = errors.New("render block did not complete")

// Mixer is the real-time render callback. It sums the active voices of a
// pool into the device buffer with saturating addition.
type Mixer struct {
	pool     *VoicePool
	channels int

	// pre-sized to one block; Render never allocates
	scratch []float32
	acc     []float32

	master atomic.Uint32 // float32 bits

	// quiesce handshake with the control side
	epoch   atomic.Uint64
	inBlock atomic.Bool

	blocks    atomic.Uint64
	frames    atomic.Uint64
	clipped   atomic.Uint64
	underruns atomic.Uint64
	wasClip   bool

	events *eventQueue
}

// NewMixer creates a mixer rendering blockSize frames of channels samples
// at a time.
func NewMixer(pool *VoicePool, channels, blockSize int, events *eventQueue) *Mixer {
	m := &Mixer{
		pool:     pool,
		channels: channels,
		scratch:  make([]float32, blockSize*channels),
		acc:      make([]float32, blockSize*channels),
		events:   events,
	}
	m.master.Store(math.Float32bits(1))
	return m
}

// SetMasterVolume sets the gain applied after summing, clamped to [0, 1].
func (m *Mixer) SetMasterVolume(v float32) {
	m.master.Store(math.Float32bits(min(max(v, 0), 1)))
}

// MasterVolume returns the current master gain.
func (m *Mixer) MasterVolume() float32 { return math.Float32frombits(m.master.Load()) }

// Render fills out with the next len(out)/channels frames. Buffers longer
// than one block are rendered a block at a time. Render is not reentrant.
func (m *Mixer) Render(out []float32) {
	m.inBlock.Store(true)
	defer func() {
		if r := recover(); r != nil {
			clear(out)
			m.events.push(Event{Kind: EventDeviceError, Err: fmt.Errorf("%w: render panic: %v", ErrDevice, r)})
		}
		m.epoch.Add(1)
		m.inBlock.Store(false)
	}()

	block := len(m.acc)
	for off := 0; off < len(out); off += block {
		m.renderBlock(out[off:min(off+block, len(out))])
	}
}

func (m *Mixer) renderBlock(out []float32) {
	n := len(out) - len(out)%m.channels
	clear(out[n:])
	out = out[:n]

	acc := m.acc[:n]
	scratch := m.scratch[:n]
	clear(acc)

	for _, v := range m.pool.voices {
		if !v.State().Active() {
			continue
		}
		if v.Advance(scratch) == 0 {
			continue
		}
		gain := v.Volume()
		for i, s := range scratch {
			acc[i] += s * gain
		}
	}

	master := m.MasterVolume()
	var clipped uint64
	for i, s := range acc {
		s *= master
		c := utils.Clamp(s)
		if c != s {
			clipped++
		}
		out[i] = c
	}

	m.blocks.Add(1)
	m.frames.Add(uint64(n / m.channels))
	if clipped > 0 {
		m.clipped.Add(clipped)
		if !m.wasClip {
			m.events.push(Event{Kind: EventClipped})
		}
	}
	m.wasClip = clipped > 0
}

// DeviceError queues an asynchronous device failure.
func (m *Mixer) DeviceError(err error) {
	m.events.push(Event{Kind: EventDeviceError, Err: fmt.Errorf("%w: %w", ErrDevice, err)})
}

// Underrun counts a block the device could not deliver on time.
func (m *Mixer) Underrun() { m.underruns.Add(1) }

// Quiesce waits until any block that was in progress when it was called
// has finished. Voice changes made before the call are then visible to
// every later block.
func (m *Mixer) Quiesce(ctx context.Context, timeout time.Duration) error {
	e := m.epoch.Load()
	if !m.inBlock.Load() {
		return nil
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(100 * time.Microsecond)
	defer ticker.Stop()

	for m.epoch.Load() == e {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ErrQuiesceTimeout
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Epoch returns the number of completed Render calls.
func (m *Mixer) Epoch() uint64 { return m.epoch.Load() }

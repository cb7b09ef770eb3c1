// SPDX-License-Identifier: EPL-2.0

package engine

import "sync"

// VoicePool is the fixed set of voices shared by all assets. Slots are
// reserved per asset at preload time, so one asset can never starve
// another. The render side reads Voices without locking.
type VoicePool struct {
	voices      []*Voice
	stealOldest bool

	mu  sync.Mutex // reservations and acquisition
	seq uint64
}

// NewVoicePool creates capacity idle voices.
func NewVoicePool(capacity int, stealOldest bool) *VoicePool {
	p := &VoicePool{
		voices:      make([]*Voice, capacity),
		stealOldest: stealOldest,
	}
	for i := range p.voices {
		p.voices[i] = &Voice{index: i}
	}
	return p
}

// Cap returns the number of voices.
func (p *VoicePool) Cap() int { return len(p.voices) }

// Voices returns the voice slots. The slice must not be modified.
func (p *VoicePool) Voices() []*Voice { return p.voices }

// Free returns the number of unreserved slots.
func (p *VoicePool) Free() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	free := 0
	for _, v := range p.voices {
		if v.asset.Load() == nil {
			free++
		}
	}
	return free
}

// Reserve assigns n free slots to a. It fails with ErrCapacity without
// reserving anything when fewer than n are free.
func (p *VoicePool) Reserve(a *Asset, n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	slots := make([]int, 0, n)
	for _, v := range p.voices {
		if len(slots) == n {
			break
		}
		if v.asset.Load() == nil {
			slots = append(slots, v.index)
		}
	}
	if len(slots) < n {
		return ErrCapacity
	}

	for _, i := range slots {
		p.voices[i].asset.Store(a)
	}
	a.slots = slots
	return nil
}

// Unreserve stops the voices of a and returns its slots to the pool.
// Callers that free the buffer must wait for the render side first.
func (p *VoicePool) Unreserve(a *Asset) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, i := range a.slots {
		v := p.voices[i]
		v.Stop()
		v.asset.Store(nil)
	}
	a.slots = nil
}

// Acquire returns the first inactive voice reserved for a. When all of
// them are active it returns the one started longest ago if stealing is
// enabled, and ErrCapacity otherwise.
func (p *VoicePool) Acquire(a *Asset) (*Voice, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.acquire(a)
}

func (p *VoicePool) acquire(a *Asset) (*Voice, error) {
	var oldest *Voice
	for _, i := range a.slots {
		v := p.voices[i]
		if !v.State().Active() {
			return v, nil
		}
		if oldest == nil || v.start.Load() < oldest.start.Load() {
			oldest = v
		}
	}

	if oldest == nil || !p.stealOldest {
		return nil, ErrCapacity
	}
	return oldest, nil
}

// Play acquires a voice for a and starts it. stolen is true when an
// active voice was restarted.
func (p *VoicePool) Play(a *Asset, volume float32, loop bool) (v *Voice, stolen bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, err = p.acquire(a)
	if err != nil {
		return nil, false, err
	}

	p.seq++
	return v, v.bind(volume, loop, p.seq), nil
}

// Loop sets the loop flag on the most recently started active voice of a.
// When none is active a voice is started looping. started reports the
// latter.
func (p *VoicePool) Loop(a *Asset, volume float32) (v *Voice, started bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var newest *Voice
	for _, i := range a.slots {
		c := p.voices[i]
		if c.State().Active() && (newest == nil || c.start.Load() > newest.start.Load()) {
			newest = c
		}
	}
	if newest != nil && newest.SetLoop(true) {
		return newest, false, nil
	}

	v, err = p.acquire(a)
	if err != nil {
		return nil, false, err
	}
	p.seq++
	v.bind(volume, true, p.seq)
	return v, true, nil
}

// StopAll stops every voice of a and returns how many were active.
func (p *VoicePool) StopAll(a *Asset) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, i := range a.slots {
		if p.voices[i].Stop() {
			n++
		}
	}
	return n
}

// Active counts the voices of a that are Playing or Looping.
func (p *VoicePool) Active(a *Asset) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, i := range a.slots {
		if p.voices[i].State().Active() {
			n++
		}
	}
	return n
}

// ActiveTotal counts active voices across the pool.
func (p *VoicePool) ActiveTotal() int {
	n := 0
	for _, v := range p.voices {
		if v.State().Active() {
			n++
		}
	}
	return n
}

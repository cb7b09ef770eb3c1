// SPDX-License-Identifier: EPL-2.0

package engine

// Stats is a snapshot of engine counters.
type Stats struct {
	Assets        int
	Voices        int // pool capacity
	ActiveVoices  int
	Blocks        uint64
	Frames        uint64
	Clipped       uint64 // samples clamped by the mixer
	Underruns     uint64
	EventsDropped uint64
	MasterVolume  float32
}

// Stats returns current counters.
func (e *Engine) Stats() Stats {
	m := e.mixer
	return Stats{
		Assets:        e.store.Len(),
		Voices:        e.pool.Cap(),
		ActiveVoices:  e.pool.ActiveTotal(),
		Blocks:        m.blocks.Load(),
		Frames:        m.frames.Load(),
		Clipped:       m.clipped.Load(),
		Underruns:     m.underruns.Load(),
		EventsDropped: e.events.dropped.Load(),
		MasterVolume:  m.MasterVolume(),
	}
}

// AssetInfo describes one stored asset.
type AssetInfo struct {
	ID      AssetID
	Kind    Kind
	Path    string
	Frames  int
	Bytes   int
	Volume  float32
	Voices  int
	Active  int
	Looping int
}

// Assets describes every stored asset, sorted by id.
func (e *Engine) Assets() []AssetInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := e.store.IDs()
	infos := make([]AssetInfo, 0, len(ids))
	for _, id := range ids {
		a, ok := e.store.Get(id)
		if !ok {
			continue
		}

		info := AssetInfo{
			ID:     id,
			Kind:   a.kind,
			Path:   a.path,
			Frames: a.buf.Frames,
			Bytes:  len(a.buf.Data) * 4,
			Volume: a.volume,
			Voices: a.VoiceCount(),
		}
		for _, s := range a.slots {
			switch e.pool.voices[s].State() {
			case Playing:
				info.Active++
			case Looping:
				info.Active++
				info.Looping++
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync/atomic"
	"time"
)

// AssetID is the caller-chosen name of a preloaded asset.
type AssetID string

// Kind tells how an asset was preloaded.
type Kind uint8

const (
	// KindFX is a one-voice sound effect at full volume.
	KindFX Kind = iota
	// KindAudio has a caller-chosen volume and voice count.
	KindAudio
)

func (k Kind) String() string {
	switch k {
	case KindFX:
		return "fx"
	case KindAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Buffer is decoded audio already converted to the output format.
type Buffer struct {
	SampleRate int
	Channels   int
	Frames     int
	Data       []float32 // interleaved, [-1, 1]
}

// Duration returns the playback length of b.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames) * time.Second / time.Duration(b.SampleRate)
}

// Asset is a preloaded buffer plus the voice slots reserved for it.
type Asset struct {
	id     AssetID
	kind   Kind
	path   string
	buf    *Buffer
	volume float32

	// indices into the pool, fixed while the asset is stored
	slots []int

	// voices currently Playing or Looping
	refs atomic.Int32
}

func (a *Asset) ID() AssetID     { return a.id }
func (a *Asset) Kind() Kind      { return a.kind }
func (a *Asset) Path() string    { return a.path }
func (a *Asset) Buffer() *Buffer { return a.buf }
func (a *Asset) Volume() float32 { return a.volume }
func (a *Asset) VoiceCount() int { return len(a.slots) }
func (a *Asset) Refs() int       { return int(a.refs.Load()) }
func (a *Asset) InUse() bool     { return a.refs.Load() > 0 }

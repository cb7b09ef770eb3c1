// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/ik5/lowlatency/audio"
)

// PreloadRequest describes an asset to decode and store.
type PreloadRequest struct {
	ID     AssetID
	Path   string
	Kind   Kind
	Volume float32
	Voices int
}

// AssetStore owns the decoded buffers. Decoding happens on the caller's
// goroutine outside the store lock; only insertion and removal lock it.
type AssetStore struct {
	registry      *audio.Registry
	pool          *VoicePool
	root          string
	sampleRate    int
	channels      int
	decodeTimeout time.Duration

	mu     sync.RWMutex
	assets map[AssetID]*Asset
}

// NewAssetStore creates a store converting every asset to sampleRate and
// channels. Relative paths are resolved against root when it is set.
func NewAssetStore(registry *audio.Registry, pool *VoicePool, sampleRate, channels int, root string, decodeTimeout time.Duration) *AssetStore {
	return &AssetStore{
		registry:      registry,
		pool:          pool,
		root:          root,
		sampleRate:    sampleRate,
		channels:      channels,
		decodeTimeout: decodeTimeout,
		assets:        make(map[AssetID]*Asset),
	}
}

// Resolve returns the file path used for an asset path.
func (s *AssetStore) Resolve(path string) string {
	if s.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, path)
}

// Preload decodes req and inserts it. See Decode and Insert.
func (s *AssetStore) Preload(ctx context.Context, req PreloadRequest) (*Asset, error) {
	a, err := s.Decode(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.Insert(a, req.Voices); err != nil {
		return nil, err
	}
	return a, nil
}

// Decode validates req and loads its file into a new, unstored Asset.
func (s *AssetStore) Decode(ctx context.Context, req PreloadRequest) (*Asset, error) {
	const op = "preload"

	switch {
	case req.ID == "":
		return nil, opErrorf(op, req.ID, ErrInvalidArgument, "empty id")
	case req.Path == "":
		return nil, opErrorf(op, req.ID, ErrInvalidArgument, "empty path")
	case req.Voices < 1:
		return nil, opErrorf(op, req.ID, ErrInvalidArgument, "voice count %d", req.Voices)
	case math.IsNaN(float64(req.Volume)) || req.Volume < 0 || req.Volume > 1:
		return nil, opErrorf(op, req.ID, ErrInvalidArgument, "volume %v outside [0, 1]", req.Volume)
	}

	path := s.Resolve(req.Path)

	decoder, format, ok := s.registry.Lookup(path)
	if !ok {
		return nil, opErrorf(op, req.ID, ErrDecode, "no decoder for %q", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, opError(op, req.ID, ErrIO, err)
	}
	defer f.Close()

	if fi, err := f.Stat(); err != nil {
		return nil, opError(op, req.ID, ErrIO, err)
	} else if fi.IsDir() {
		return nil, opErrorf(op, req.ID, ErrIO, "%s is a directory", path)
	}

	if s.decodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.decodeTimeout)
		defer cancel()
	}

	src, err := decoder.Decode(f)
	if err != nil {
		return nil, opErrorf(op, req.ID, ErrDecode, "%s: %w", format, err)
	}
	defer src.Close()

	pcm, err := audio.ReadAll(ctx, src)
	if err != nil {
		return nil, opErrorf(op, req.ID, ErrDecode, "%s: %w", format, err)
	}
	if pcm.Frames() == 0 {
		return nil, opErrorf(op, req.ID, ErrDecode, "%s: no audio frames", format)
	}

	out, err := pcm.Convert(s.sampleRate, s.channels)
	if err != nil {
		return nil, opErrorf(op, req.ID, ErrDecode, "converting: %w", err)
	}
	// Downsampling a very short asset can leave nothing to play.
	if out.Frames() == 0 {
		return nil, opErrorf(op, req.ID, ErrDecode, "%s: no audio frames at %d Hz", format, s.sampleRate)
	}

	return &Asset{
		id:     req.ID,
		kind:   req.Kind,
		path:   path,
		volume: req.Volume,
		buf: &Buffer{
			SampleRate: out.SampleRate,
			Channels:   out.Channels,
			Frames:     out.Frames(),
			Data:       out.Data,
		},
	}, nil
}

// Insert reserves voices for a and stores it, replacing an idle asset with
// the same id. The replaced asset, if any, is returned. An id whose voices
// are still active fails with ErrDuplicate.
func (s *AssetStore) Insert(a *Asset, voices int) (*Asset, error) {
	const op = "preload"

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.assets[a.id]
	oldVoices := 0
	if old != nil {
		if old.InUse() {
			return nil, opError(op, a.id, ErrDuplicate, nil)
		}
		oldVoices = old.VoiceCount()
		s.pool.Unreserve(old)
	}

	if err := s.pool.Reserve(a, voices); err != nil {
		if old != nil {
			// the slots just freed still fit the old asset
			_ = s.pool.Reserve(old, oldVoices)
		}
		return nil, opErrorf(op, a.id, ErrCapacity, "%d voices requested, %d free", voices, s.pool.Free())
	}

	s.assets[a.id] = a
	return old, nil
}

// Get returns the stored asset for id.
func (s *AssetStore) Get(id AssetID) (*Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assets[id]
	return a, ok
}

// IDs returns the stored ids in sorted order.
func (s *AssetStore) IDs() []AssetID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]AssetID, 0, len(s.assets))
	for id := range s.assets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of stored assets.
func (s *AssetStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.assets)
}

// Release removes id and frees its voice slots. Without force it fails
// with ErrInUse while voices are active; with force they are stopped. The
// caller must let the render side quiesce before the buffer is dropped.
func (s *AssetStore) Release(id AssetID, force bool) (*Asset, error) {
	const op = "release"

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assets[id]
	if !ok {
		return nil, opError(op, id, ErrNotFound, nil)
	}
	if a.InUse() && !force {
		return nil, opErrorf(op, id, ErrInUse, "%d active voices", a.Refs())
	}

	s.pool.Unreserve(a)
	delete(s.assets, id)
	return a, nil
}

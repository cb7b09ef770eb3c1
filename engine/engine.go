// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/ik5/lowlatency/audio"
	"github.com/ik5/lowlatency/config"
	"github.com/ik5/lowlatency/device"
)

// Engine is the control surface: it owns the asset store, the voice pool,
// the mixer and the output device. Every method is safe for concurrent
// use; control operations are serialized and never block the render side.
type Engine struct {
	cfg    config.Config
	logger *log.Logger

	store  *AssetStore
	pool   *VoicePool
	mixer  *Mixer
	events *eventQueue
	dev    device.Device

	mu     sync.Mutex // control operations
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for control operations. A nil logger
// keeps the default.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRegistry sets the decoders used by preload. A nil registry keeps
// the default.
func WithRegistry(r *audio.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.store.registry = r
		}
	}
}

// New creates an engine rendering to dev and starts the device. The output
// format is taken from dev; cfg supplies voice, block and timeout settings.
func New(cfg config.Config, dev device.Device, opts ...Option) (*Engine, error) {
	if dev == nil {
		return nil, opErrorf("open", "", ErrInvalidArgument, "nil device")
	}
	cfg.SampleRate = dev.SampleRate()
	cfg.Channels = dev.Channels()
	if cfg.Device == "" {
		cfg.Device = config.DeviceNull
	}
	if err := cfg.Validate(); err != nil {
		return nil, opError("open", "", ErrInvalidArgument, err)
	}

	e := &Engine{
		cfg:    cfg,
		logger: log.Default().WithPrefix("lowlatency"),
		pool:   NewVoicePool(cfg.MaxVoices, cfg.StealOldest),
		events: newEventQueue(cfg.EventBuffer),
		dev:    dev,
	}
	e.store = NewAssetStore(audio.NewRegistry(), e.pool, cfg.SampleRate, cfg.Channels, cfg.AssetRoot, cfg.DecodeTimeout)
	e.mixer = NewMixer(e.pool, cfg.Channels, cfg.BlockSize, e.events)

	for _, opt := range opts {
		opt(e)
	}

	if err := dev.Start(e.mixer); err != nil {
		return nil, opError("open", "", ErrDevice, err)
	}

	e.logger.Debug("engine started",
		"rate", cfg.SampleRate, "channels", cfg.Channels,
		"block", cfg.BlockSize, "voices", cfg.MaxVoices)

	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() config.Config { return e.cfg }

// Store returns the asset store.
func (e *Engine) Store() *AssetStore { return e.store }

// Pool returns the voice pool.
func (e *Engine) Pool() *VoicePool { return e.pool }

// Mixer returns the render callback driven by the device.
func (e *Engine) Mixer() *Mixer { return e.mixer }

// Events returns the status event queue. It is never closed.
func (e *Engine) Events() <-chan Event { return e.events.ch }

// PreloadFX loads a one-voice sound effect at full volume.
func (e *Engine) PreloadFX(ctx context.Context, id AssetID, path string) error {
	return e.preload(ctx, PreloadRequest{ID: id, Path: path, Kind: KindFX, Volume: 1, Voices: 1})
}

// PreloadAudio loads an asset with its own volume in [0, 1] and voice count.
func (e *Engine) PreloadAudio(ctx context.Context, id AssetID, path string, volume float32, voices int) error {
	return e.preload(ctx, PreloadRequest{ID: id, Path: path, Kind: KindAudio, Volume: volume, Voices: voices})
}

func (e *Engine) preload(ctx context.Context, req PreloadRequest) error {
	if e.isClosed() {
		return opError("preload", req.ID, ErrClosed, nil)
	}

	// Decode without holding the control lock so play stays responsive.
	a, err := e.store.Decode(ctx, req)
	if err != nil {
		e.logger.Warn("preload failed", "id", req.ID, "path", req.Path, "err", err)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return opError("preload", req.ID, ErrClosed, nil)
	}

	old, err := e.store.Insert(a, req.Voices)
	if err != nil {
		e.logger.Warn("preload failed", "id", req.ID, "err", err)
		return err
	}
	if old != nil {
		e.logger.Info("asset replaced", "id", req.ID, "path", a.path)
	}

	e.logger.Debug("asset preloaded",
		"id", req.ID, "kind", req.Kind, "frames", a.buf.Frames,
		"duration", a.buf.Duration(), "voices", req.Voices)
	return nil
}

func (e *Engine) lookup(op string, id AssetID) (*Asset, error) {
	if e.closed {
		return nil, opError(op, id, ErrClosed, nil)
	}
	a, ok := e.store.Get(id)
	if !ok {
		return nil, opError(op, id, ErrNotFound, nil)
	}
	return a, nil
}

// Play starts a voice of id from the beginning. When every voice of id is
// busy the oldest is restarted, or ErrCapacity is returned if stealing is
// disabled.
func (e *Engine) Play(id AssetID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.lookup("play", id)
	if err != nil {
		return err
	}

	v, stolen, err := e.pool.Play(a, a.volume, false)
	if err != nil {
		return opErrorf("play", id, err, "%d voices busy", a.VoiceCount())
	}
	if stolen {
		e.events.push(Event{Kind: EventVoiceStolen, ID: id})
	}

	e.logger.Debug("play", "id", id, "voice", v.index, "stolen", stolen)
	return nil
}

// Stop stops every voice of id. Stopping an idle asset succeeds.
func (e *Engine) Stop(id AssetID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.lookup("stop", id)
	if err != nil {
		return err
	}

	n := e.pool.StopAll(a)
	e.logger.Debug("stop", "id", id, "voices", n)
	return nil
}

// Loop makes the most recently started voice of id loop, or starts a
// looping voice when none is active.
func (e *Engine) Loop(id AssetID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.lookup("loop", id)
	if err != nil {
		return err
	}

	v, started, err := e.pool.Loop(a, a.volume)
	if err != nil {
		return opErrorf("loop", id, err, "%d voices busy", a.VoiceCount())
	}

	e.logger.Debug("loop", "id", id, "voice", v.index, "started", started)
	return nil
}

// Unload stops id, waits for the render side to finish the block in
// progress and drops the asset.
func (e *Engine) Unload(ctx context.Context, id AssetID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.lookup("unload", id)
	if err != nil {
		return err
	}

	e.pool.StopAll(a)
	e.quiesce(ctx, id)

	if _, err := e.store.Release(id, true); err != nil {
		return err
	}

	e.logger.Debug("unload", "id", id)
	return nil
}

// quiesce waits for the render side to observe stopped voices. A stalled
// device only delays the release; the buffer stays reachable from any
// block still reading it.
func (e *Engine) quiesce(ctx context.Context, id AssetID) {
	if err := e.mixer.Quiesce(ctx, e.cfg.QuiesceTimeout); err != nil {
		e.logger.Warn("render did not quiesce", "id", id, "err", err)
	}
}

// SetMasterVolume sets the output gain, clamped to [0, 1].
func (e *Engine) SetMasterVolume(v float32) {
	e.mixer.SetMasterVolume(v)
}

// Voices returns the voices reserved for id.
func (e *Engine) Voices(id AssetID) ([]*Voice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.lookup("voices", id)
	if err != nil {
		return nil, err
	}

	voices := make([]*Voice, len(a.slots))
	for i, s := range a.slots {
		voices[i] = e.pool.voices[s]
	}
	return voices, nil
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.closed
}

// Close unloads every asset and closes the device. Further control
// operations return ErrClosed; closing again does nothing.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	ids := e.store.IDs()
	for _, id := range ids {
		if a, ok := e.store.Get(id); ok {
			e.pool.StopAll(a)
		}
	}
	e.quiesce(context.Background(), "")

	var errs []error
	for _, id := range ids {
		if _, err := e.store.Release(id, true); err != nil {
			errs = append(errs, err)
		}
	}

	if err := e.dev.Close(); err != nil {
		errs = append(errs, opError("close", "", ErrDevice, err))
	}

	e.logger.Debug("engine closed", "assets", len(ids))

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing engine: %w", err)
	}
	return nil
}

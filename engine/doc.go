// SPDX-License-Identifier: EPL-2.0

// Package engine implements a low-latency playback engine for preloaded
// sounds.
//
// # Components
//
//   - AssetStore decodes files into memory, converting them to the output
//     rate and channel count so the render path never resamples.
//   - VoicePool holds a fixed set of voices. Each asset reserves its own
//     slots at preload time, so a busy asset cannot starve another.
//   - Mixer is the device callback. It sums active voices into the output
//     with saturating addition and never allocates, locks or logs.
//   - Engine is the control surface: PreloadFX, PreloadAudio, Play, Stop,
//     Loop and Unload, plus Do for typed Command values.
//
// # Concurrency
//
// Control calls run on the caller's goroutine and are serialized by one
// mutex. The render goroutine never takes it. A voice's state and
// generation share one atomic word; the control side binds and stops
// voices with compare-and-swap and the render side moves a finished voice
// to Idle the same way, so exactly one side releases its asset reference.
//
// Unload stops the voices of an asset, then waits for any render block in
// progress to finish before dropping the buffer:
//
//	e.Stop("music")
//	e.Unload(ctx, "music")
//
// # Errors
//
// Control operations return *Error values carrying a kind (ErrIO,
// ErrDecode, ErrNotFound, ErrCapacity, ErrDuplicate, ...) matched with
// errors.Is. Failures on the render side arrive as Events instead; the
// mixer outputs silence and keeps running.
//
// # Example
//
//	e, err := engine.New(cfg, dev, engine.WithRegistry(reg))
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	if err := e.PreloadAudio(ctx, "click", "click.wav", 0.8, 3); err != nil {
//	    return err
//	}
//	e.Play("click")
package engine

// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"fmt"
)

// Command is one typed control request.
type Command interface {
	Name() string
	Target() AssetID
	exec(ctx context.Context, e *Engine) error
}

// PreloadFX loads a one-voice effect.
type PreloadFX struct {
	ID   AssetID
	Path string
}

// PreloadAudio loads an asset with a volume and voice count.
type PreloadAudio struct {
	ID     AssetID
	Path   string
	Volume float32
	Voices int
}

// Play starts a voice.
type Play struct{ ID AssetID }

// Stop stops all voices of an asset.
type Stop struct{ ID AssetID }

// Loop loops an active voice or starts a looping one.
type Loop struct{ ID AssetID }

// Unload stops and drops an asset.
type Unload struct{ ID AssetID }

func (PreloadFX) Name() string    { return "preloadFX" }
func (PreloadAudio) Name() string { return "preloadAudio" }
func (Play) Name() string         { return "play" }
func (Stop) Name() string         { return "stop" }
func (Loop) Name() string         { return "loop" }
func (Unload) Name() string       { return "unload" }

func (c PreloadFX) Target() AssetID    { return c.ID }
func (c PreloadAudio) Target() AssetID { return c.ID }
func (c Play) Target() AssetID         { return c.ID }
func (c Stop) Target() AssetID         { return c.ID }
func (c Loop) Target() AssetID         { return c.ID }
func (c Unload) Target() AssetID       { return c.ID }

func (c PreloadFX) exec(ctx context.Context, e *Engine) error {
	return e.PreloadFX(ctx, c.ID, c.Path)
}

func (c PreloadAudio) exec(ctx context.Context, e *Engine) error {
	return e.PreloadAudio(ctx, c.ID, c.Path, c.Volume, c.Voices)
}

func (c Play) exec(_ context.Context, e *Engine) error     { return e.Play(c.ID) }
func (c Stop) exec(_ context.Context, e *Engine) error     { return e.Stop(c.ID) }
func (c Loop) exec(_ context.Context, e *Engine) error     { return e.Loop(c.ID) }
func (c Unload) exec(ctx context.Context, e *Engine) error { return e.Unload(ctx, c.ID) }

// Result is the outcome of Do.
type Result struct {
	OK      bool
	Err     error
	Message string
}

// Do runs cmd and reports its real outcome.
func (e *Engine) Do(ctx context.Context, cmd Command) Result {
	if err := cmd.exec(ctx, e); err != nil {
		return Result{Err: err, Message: err.Error()}
	}
	return Result{OK: true, Message: fmt.Sprintf("%s %s", cmd.Name(), cmd.Target())}
}

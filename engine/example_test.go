// SPDX-License-Identifier: EPL-2.0

package engine_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ik5/lowlatency/audio"
	"github.com/ik5/lowlatency/config"
	"github.com/ik5/lowlatency/device"
	"github.com/ik5/lowlatency/engine"
	"github.com/ik5/lowlatency/formats/wav"
	"github.com/ik5/lowlatency/internal/audiotest"
)

func Example() {
	dir, _ := os.MkdirTemp("", "lowlatency")
	defer os.RemoveAll(dir)

	// 100ms of a half-scale click at 8 kHz mono
	click := make([]int16, 800)
	for i := range click {
		click[i] = 16384
	}
	_ = os.WriteFile(filepath.Join(dir, "click.wav"), audiotest.WAV16(8000, 1, click), 0o600)

	cfg := config.Default()
	cfg.AssetRoot = dir

	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})

	dev := device.NewFile(io.Discard, 8000, 1, cfg.BlockSize)
	e, err := engine.New(cfg, dev, engine.WithRegistry(reg), engine.WithLogger(log.New(io.Discard)))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer e.Close()

	ctx := context.Background()
	fmt.Println(e.Do(ctx, engine.PreloadAudio{ID: "click", Path: "click.wav", Volume: 0.8, Voices: 3}).Message)

	for range 3 {
		e.Do(ctx, engine.Play{ID: "click"})
	}
	fmt.Println("active voices:", e.Stats().ActiveVoices)

	out, _ := dev.Render(4)
	fmt.Println("peak:", out[0])

	res := e.Do(ctx, engine.Play{ID: "missing"})
	fmt.Println(res.OK, res.Err)

	// Output:
	// preloadAudio click
	// active voices: 3
	// peak: 1
	// false play missing: asset not preloaded
}

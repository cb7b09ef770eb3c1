// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/ik5/lowlatency/audio"
	"github.com/ik5/lowlatency/config"
	"github.com/ik5/lowlatency/device"
	"github.com/ik5/lowlatency/formats/wav"
	"github.com/ik5/lowlatency/internal/audiotest"
)

const (
	testRate  = 8000
	testBlock = 64
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.SampleRate = testRate
	cfg.Channels = 1
	cfg.BlockSize = testBlock
	cfg.MaxVoices = 8
	cfg.Device = config.DeviceNull
	return cfg
}

// newTestEngine returns an engine on an offline device; rendering happens
// only when the test pulls frames from the returned device.
func newTestEngine(t *testing.T, modify func(*config.Config)) (*Engine, *device.File) {
	t.Helper()

	cfg := testConfig()
	if modify != nil {
		modify(&cfg)
	}

	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})

	dev := device.NewFile(io.Discard, cfg.SampleRate, cfg.Channels, cfg.BlockSize)
	e, err := New(cfg, dev, WithRegistry(reg), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })

	return e, dev
}

// writeWAV stores a mono test-rate WAV file and returns its path.
func writeWAV(t *testing.T, dir, name string, samples []int16) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, audiotest.WAV16(testRate, 1, samples), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func constant(n int, v int16) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// ramp returns n samples whose values identify their frame.
func ramp(n int) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = int16((i%320 + 1) * 100)
	}
	return s
}

func render(t *testing.T, dev *device.File, frames int) []float32 {
	t.Helper()

	out, err := dev.Render(frames)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return out
}

func voicesOf(t *testing.T, e *Engine, id AssetID) []*Voice {
	t.Helper()

	voices, err := e.Voices(id)
	if err != nil {
		t.Fatalf("Voices(%q) error = %v", id, err)
	}
	return voices
}

func countState(voices []*Voice, s State) int {
	n := 0
	for _, v := range voices {
		if v.State() == s {
			n++
		}
	}
	return n
}

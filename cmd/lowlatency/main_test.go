// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/ik5/lowlatency"
	"github.com/ik5/lowlatency/config"
	"github.com/ik5/lowlatency/device"
	"github.com/ik5/lowlatency/engine"
	"github.com/ik5/lowlatency/internal/audiotest"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want engine.Command
		err  error
	}{
		{"preloadFX jump sfx/jump.wav", engine.PreloadFX{ID: "jump", Path: "sfx/jump.wav"}, nil},
		{"preloadAudio music theme.ogg", engine.PreloadAudio{ID: "music", Path: "theme.ogg", Volume: 1, Voices: 1}, nil},
		{"preloadAudio hit hit.wav 0.5 4", engine.PreloadAudio{ID: "hit", Path: "hit.wav", Volume: 0.5, Voices: 4}, nil},
		{"play jump", engine.Play{ID: "jump"}, nil},
		{"stop jump", engine.Stop{ID: "jump"}, nil},
		{"loop music", engine.Loop{ID: "music"}, nil},
		{"unload music", engine.Unload{ID: "music"}, nil},
		{"dance jump", nil, errUnknownCommand},
		{"play", nil, errUsage},
		{"play a b", nil, errUsage},
		{"preloadFX jump", nil, errUsage},
		{"preloadAudio hit hit.wav loud", nil, errUsage},
		{"preloadAudio hit hit.wav 1 many", nil, errUsage},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			got, err := parseCommand(strings.Fields(tt.line))
			if !errors.Is(err, tt.err) {
				t.Fatalf("parseCommand() error = %v, want %v", err, tt.err)
			}
			if got != tt.want {
				t.Errorf("parseCommand() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseAsset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg    string
		id     engine.AssetID
		path   string
		failed bool
	}{
		{"music=theme.ogg", "music", "theme.ogg", false},
		{"sfx/jump.wav", "jump", "sfx/jump.wav", false},
		{"=x.wav", "", "", true},
		{"id=", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			id, path, err := parseAsset(tt.arg)
			if (err != nil) != tt.failed {
				t.Fatalf("parseAsset() error = %v", err)
			}
			if id != tt.id || path != tt.path {
				t.Errorf("parseAsset() = %q, %q; want %q, %q", id, path, tt.id, tt.path)
			}
		})
	}
}

func TestRunLine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	samples := make([]int16, 800)
	for i := range samples {
		samples[i] = 4096
	}
	if err := os.WriteFile(filepath.Join(dir, "beep.wav"), audiotest.WAV16(8000, 1, samples), 0o600); err != nil {
		t.Fatal(err)
	}

	c := config.Default()
	c.AssetRoot = dir
	dev := device.NewFile(io.Discard, 8000, 2, 64)
	e, err := lowlatency.OpenDevice(c, dev, engine.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("OpenDevice() error = %v", err)
	}
	defer e.Close()

	ctx := context.Background()
	out := new(bytes.Buffer)

	steps := []struct {
		line string
		want string
	}{
		{"preloadFX beep beep.wav", "ok: preloadFX beep"},
		{"play beep", "ok: play beep"},
		{"play nope", "error: play nope: asset not preloaded"},
		{"volume 0.5", "master volume 0.50"},
		{"status", "1 assets"},
		{"bogus", "unknown command"},
		{"unload beep", "ok: unload beep"},
	}

	for _, s := range steps {
		out.Reset()
		if quit := runLine(ctx, e, out, s.line); quit {
			t.Fatalf("runLine(%q) quit", s.line)
		}
		if !strings.Contains(out.String(), s.want) {
			t.Errorf("runLine(%q) = %q, want it to contain %q", s.line, out.String(), s.want)
		}
	}

	if !runLine(ctx, e, out, "quit") {
		t.Error("runLine(quit) did not quit")
	}
}

func TestEnsureConfigFile(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "nested", "lowlatency.yml")
	if err := ensureConfigFile(name); err != nil {
		t.Fatalf("ensureConfigFile() error = %v", err)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != defaultConfig {
		t.Error("config file does not hold the default configuration")
	}

	if err := ensureConfigFile(filepath.Join(t.TempDir(), "lowlatency.toml")); err == nil {
		t.Error("ensureConfigFile(.toml) error = nil, want error")
	}
}

func TestPrintConfig(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	if err := printConfig(out, config.Default()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"sample_rate: 48000", "block_size: 256 (5.333333ms)", "device: oto"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("printConfig() missing %q in\n%s", want, out.String())
		}
	}
}

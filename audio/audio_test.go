// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/lowlatency/internal/audiotest"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

// failingDecoder always returns an error
type failingDecoder struct{}

func (d *failingDecoder) Decode(r io.Reader) (Source, error) {
	return nil, errors.New("decode failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}

	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_KeysAreNormalized(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "ogg"}
	registry.Register(".OGG", decoder)

	for _, key := range []string{"ogg", "OGG", ".ogg", ".Ogg"} {
		got, ok := registry.Get(key)
		if !ok || got != decoder {
			t.Errorf("Registry.Get(%q) = %v, %v; want registered decoder", key, got, ok)
		}
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	mp3Decoder := &mockDecoder{name: "mp3"}
	registry.Register("wav", wavDecoder)
	registry.Register("mp3", mp3Decoder)

	tests := []struct {
		path       string
		want       Decoder
		wantFormat string
		wantOK     bool
	}{
		{"sounds/click.wav", wavDecoder, "wav", true},
		{"/abs/path/Theme.MP3", mp3Decoder, "mp3", true},
		{"noext", nil, "", false},
		{"track.flac", nil, "flac", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, format, ok := registry.Lookup(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if format != tt.wantFormat {
				t.Errorf("Lookup(%q) format = %q, want %q", tt.path, format, tt.wantFormat)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("Lookup(%q) returned wrong decoder", tt.path)
			}
		})
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})
	registry.Register("aiff", &mockDecoder{})
	registry.Register("mp3", &failingDecoder{})

	want := []string{"aiff", "mp3", "wav"}
	if got := registry.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder1 := &mockDecoder{name: "first"}
	decoder2 := &mockDecoder{name: "second"}

	registry.Register("wav", decoder1)
	registry.Register("wav", decoder2)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed after overwrite")
	}

	if got != decoder2 {
		t.Error("Registry.Get() did not return the overwritten decoder")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	done := make(chan bool)
	for range 10 {
		go func() {
			registry.Register("format", decoder)
			done <- true
		}()
	}
	for range 10 {
		go func() {
			_, _, _ = registry.Lookup("x.format")
			done <- true
		}()
	}
	for range 20 {
		<-done
	}

	got, ok := registry.Get("format")
	if !ok || got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}

func TestErrInvalidFormat_Wrapped(t *testing.T) {
	t.Parallel()

	wrapped := errors.Join(ErrInvalidFormat, errors.New("additional context"))
	if !errors.Is(wrapped, ErrInvalidFormat) {
		t.Error("errors.Is() failed for wrapped ErrInvalidFormat")
	}
}

// BenchmarkRegistry_Lookup benchmarks resolving a decoder from a path
func BenchmarkRegistry_Lookup(b *testing.B) {
	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})

	b.ReportAllocs()

	for b.Loop() {
		_, _, _ = registry.Lookup("assets/click.wav")
	}
}

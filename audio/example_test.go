// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"context"
	"fmt"
	"io"

	"github.com/ik5/lowlatency/audio"
	"github.com/ik5/lowlatency/internal/audiotest"
)

// Example_readAll decodes a whole source into memory and converts it to an
// output format.
func Example_readAll() {
	// One second of 22.05kHz mono
	source := audiotest.NewSineSource(22050, 1, 22050, 440.0)

	pcm, err := audio.ReadAll(context.Background(), source)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	out, err := pcm.Convert(48000, 2)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Sample rate: %d Hz\n", out.SampleRate)
	fmt.Printf("Channels: %d\n", out.Channels)
	fmt.Printf("Frames: %d\n", out.Frames())
	fmt.Printf("Duration: %v\n", out.Duration())
	// Output:
	// Sample rate: 48000 Hz
	// Channels: 2
	// Frames: 48000
	// Duration: 1s
}

// mockDecoder is a simple decoder for testing the registry.
type mockDecoder struct{}

func (m mockDecoder) Decode(r io.Reader) (audio.Source, error) {
	return audiotest.NewSineSource(16000, 1, 1000, 440.0), nil
}

// Example_registry demonstrates resolving a decoder from a file name.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("wav", mockDecoder{})

	_, format, ok := registry.Lookup("sounds/click.WAV")
	fmt.Println(format, ok)

	_, format, ok = registry.Lookup("sounds/theme.flac")
	fmt.Println(format, ok)
	// Output:
	// wav true
	// flac false
}

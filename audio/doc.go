// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decode-side primitives used to load assets.
//
// This package contains:
//   - Source interface for streaming decoder output
//   - Registry mapping file extensions to decoders
//   - PCM, a fully decoded in-memory buffer
//   - ReadAll, Resample, Remix and Convert to bring a decoded stream to the
//     output device's sample rate and channel layout
//
// # Source Interface
//
// Every codec adapter in formats/ returns a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// # Loading a Buffer
//
// Assets are decoded once, up front, so playback never touches a codec:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	pcm, err := audio.ReadAll(ctx, src)
//	out, err := pcm.Convert(48000, 2)
//
// Resampling uses Catmull-Rom cubic interpolation. Downmixing averages the
// channels folding onto each output channel; upmixing repeats them.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, format, ok := registry.Lookup("sounds/click.wav")
//
// # Sample Format
//
// Audio samples are float32 in the range [-1.0, 1.0], interleaved by frame.
//
// # Error Handling
//
// ReadAll stops on the first non-EOF error from the source and wraps it.
// Sources that keep returning (0, nil) are abandoned with io.ErrNoProgress,
// and a cancelled context aborts the read between chunks.
package audio

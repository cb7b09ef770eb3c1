// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE PCM audio.
//
// Decoding is delegated to github.com/go-audio/wav, which walks the RIFF
// chunk list (LIST/INFO and other chunks are skipped) and exposes integer
// PCM. Integer PCM at 8, 16, 24 and 32 bits is converted to float32 in
// [-1, 1]; IEEE float and compressed WAVE formats are rejected with
// ErrUnsupportedWavLayout.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("click.wav")
//	source, err := wav.Decoder{}.Decode(file)
//
// Readers that cannot seek are buffered in memory first.
//
// # Writing WAV Files
//
// WriteWAV16 writes interleaved 16-bit PCM with a canonical 44-byte header
// and works with any io.Writer. WriteFloat32 clips float samples first; the
// offline file device uses it to store rendered mixes.
//
//	wav.WriteFloat32(out, 48000, 2, mixed)
package wav

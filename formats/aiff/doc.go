// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to parse the container and
// converts its big-endian integer PCM to float32.
//
// # Supported Formats
//
//   - PCM 8, 16, 24 and 32-bit
//   - Mono and multi-channel
//   - Any sample rate
//
// AIFF-C compressed variants are rejected by the underlying parser.
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("sounds/door.aiff")
//	source, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	pcm, err := audio.ReadAll(ctx, source)
//
// # Error Handling
//
//   - ErrNotAiffFile: Input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: Sample size is not 8, 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: Missing channels or sample rate
package aiff

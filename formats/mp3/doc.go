// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MPEG-1 and
// MPEG-2 Layer III streams. go-mp3 always produces 16-bit interleaved
// stereo, so every Source from this package reports two channels; mono
// files arrive duplicated across both.
//
//	file, _ := os.Open("music/theme.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//	if errors.Is(err, mp3.ErrInvalidStream) {
//	    // not an MP3
//	}
//
// The stream is decoded frame by frame; ReadSamples only returns whole
// stereo frames.
package mp3

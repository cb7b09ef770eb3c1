// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder that
// produces float32 samples directly, so no integer conversion happens here.
//
//	file, _ := os.Open("music/ambience.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// Channel count and sample rate come from the identification header.
// ReadSamples trims the destination to whole frames before decoding.
package vorbis

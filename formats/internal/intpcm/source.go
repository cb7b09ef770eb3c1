// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts the go-audio integer PCM decoders (wav, aiff) to
// audio.Source.
package intpcm

import (
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the subset of the go-audio wav and aiff decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source wraps a Reader and converts its integer samples to float32.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	scale      float32
	offset     int
	intBuf     *goaudio.IntBuffer
}

// NewSource builds a Source for the given bit depth. Unsigned 8-bit data
// (as stored by WAV) is centered when unsigned8 is true.
func NewSource(dec Reader, sampleRate, channels, bitDepth int, unsigned8 bool) *Source {
	s := &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      1 / FullScale(bitDepth),
	}
	if bitDepth == 8 && unsigned8 {
		s.offset = 128
	}
	return s
}

// FullScale returns the magnitude of the most negative sample for bitDepth.
func FullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]-s.offset) * s.scale
	}

	// The go-audio decoders fold EOF into a short read.
	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}

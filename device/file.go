// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"io"
	"time"

	"github.com/ik5/lowlatency/formats/wav"
)

// File renders offline into a 16-bit PCM WAV stream. Nothing is rendered
// until RenderFor is called, which lets tests and the render command drive
// the engine block by block without a clock.
type File struct {
	w          io.Writer
	sampleRate int
	channels   int
	blockSize  int

	r Renderer
}

func NewFile(w io.Writer, sampleRate, channels, blockSize int) *File {
	return &File{
		w:          w,
		sampleRate: sampleRate,
		channels:   channels,
		blockSize:  blockSize,
	}
}

func (f *File) SampleRate() int { return f.sampleRate }
func (f *File) Channels() int   { return f.channels }

func (f *File) Start(r Renderer) error {
	if f.r != nil {
		return ErrAlreadyStarted
	}
	f.r = r
	return nil
}

// Render pulls the given number of frames from the renderer, one block at
// a time, without writing anything.
func (f *File) Render(frames int) ([]float32, error) {
	if f.r == nil {
		return nil, ErrNotStarted
	}

	out := make([]float32, frames*f.channels)
	block := f.blockSize * f.channels
	for off := 0; off < len(out); off += block {
		f.r.Render(out[off:min(off+block, len(out))])
	}

	return out, nil
}

// RenderFor renders d of audio and writes it as one WAV file.
func (f *File) RenderFor(d time.Duration) error {
	frames := int(d * time.Duration(f.sampleRate) / time.Second)

	samples, err := f.Render(frames)
	if err != nil {
		return err
	}

	if err := wav.WriteFloat32(f.w, f.sampleRate, f.channels, samples); err != nil {
		return fmt.Errorf("writing render: %w", err)
	}
	return nil
}

func (f *File) Close() error {
	f.r = nil
	if c, ok := f.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

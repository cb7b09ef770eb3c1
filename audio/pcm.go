// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ik5/lowlatency/utils"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads ReadAll tolerates
// before giving up on a source.
const maxEmptyReads = 64

// PCM is a fully decoded, in-memory block of interleaved float32 samples.
type PCM struct {
	SampleRate int
	Channels   int
	Data       []float32
}

// Frames returns the number of frames (samples per channel) held.
func (p *PCM) Frames() int {
	if p.Channels <= 0 {
		return 0
	}
	return len(p.Data) / p.Channels
}

// Duration returns the playback length of the buffer.
func (p *PCM) Duration() time.Duration {
	if p.SampleRate <= 0 {
		return 0
	}
	return time.Duration(p.Frames()) * time.Second / time.Duration(p.SampleRate)
}

// ReadAll drains src into memory. The context is checked between reads so a
// slow decode can be abandoned.
func ReadAll(ctx context.Context, src Source) (*PCM, error) {
	channels := src.Channels()
	if channels <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidFormat
	}

	chunk := src.BufSize()
	if chunk <= 0 {
		chunk = 4096
	}
	// Keep reads frame aligned.
	chunk -= chunk % channels
	if chunk == 0 {
		chunk = channels
	}

	pcm := &PCM{
		SampleRate: src.SampleRate(),
		Channels:   channels,
		Data:       make([]float32, 0, chunk*4),
	}
	buf := make([]float32, chunk)
	empty := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		n, err := src.ReadSamples(buf)
		if n > 0 {
			pcm.Data = append(pcm.Data, buf[:n]...)
			empty = 0
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return nil, fmt.Errorf("reading samples: %w", io.ErrNoProgress)
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}

	// Drop a trailing partial frame.
	pcm.Data = pcm.Data[:len(pcm.Data)-len(pcm.Data)%channels]

	return pcm, nil
}

// Resample returns a copy of p at dstRate using Catmull-Rom cubic
// interpolation. When the rates already match p is returned unchanged.
func (p *PCM) Resample(dstRate int) (*PCM, error) {
	if dstRate <= 0 || p.SampleRate <= 0 || p.Channels <= 0 {
		return nil, ErrInvalidFormat
	}
	if dstRate == p.SampleRate {
		return p, nil
	}

	ch := p.Channels
	srcFrames := p.Frames()
	dstFrames := int(int64(srcFrames) * int64(dstRate) / int64(p.SampleRate))
	ratio := float64(p.SampleRate) / float64(dstRate)

	out := &PCM{
		SampleRate: dstRate,
		Channels:   ch,
		Data:       make([]float32, dstFrames*ch),
	}
	if srcFrames == 0 {
		return out, nil
	}

	last := srcFrames - 1
	frame := func(i int) int {
		if i < 0 {
			return 0
		}
		if i > last {
			return last * ch
		}
		return i * ch
	}

	for i := range dstFrames {
		pos := float64(i) * ratio
		idx := int(pos)
		alpha := float32(pos - float64(idx))

		f0, f1, f2, f3 := frame(idx-1), frame(idx), frame(idx+1), frame(idx+2)
		for c := range ch {
			out.Data[i*ch+c] = utils.CubicInterpolate(
				p.Data[f0+c], p.Data[f1+c], p.Data[f2+c], p.Data[f3+c], alpha)
		}
	}

	return out, nil
}

// Remix converts p to the requested channel count. Downmixing averages every
// source channel that folds onto an output channel (all channels for mono);
// upmixing repeats source channels cyclically (mono is duplicated).
func (p *PCM) Remix(channels int) (*PCM, error) {
	if channels <= 0 || p.Channels <= 0 {
		return nil, ErrInvalidFormat
	}
	if channels == p.Channels {
		return p, nil
	}

	from := p.Channels
	frames := p.Frames()
	out := &PCM{
		SampleRate: p.SampleRate,
		Channels:   channels,
		Data:       make([]float32, frames*channels),
	}

	if channels > from {
		for f := range frames {
			in := p.Data[f*from : f*from+from]
			dst := out.Data[f*channels : f*channels+channels]
			for c := range dst {
				dst[c] = in[c%from]
			}
		}
		return out, nil
	}

	// Number of source channels folding onto each output channel.
	folds := make([]float32, channels)
	for c := range from {
		folds[c%channels]++
	}
	for c := range folds {
		folds[c] = 1 / folds[c]
	}

	for f := range frames {
		in := p.Data[f*from : f*from+from]
		dst := out.Data[f*channels : f*channels+channels]
		for c, v := range in {
			dst[c%channels] += v
		}
		for c := range dst {
			dst[c] *= folds[c]
		}
	}

	return out, nil
}

// Convert brings p to the given rate and channel count, remixing before
// resampling when channels are dropped so fewer channels are interpolated.
func (p *PCM) Convert(rate, channels int) (*PCM, error) {
	if channels < p.Channels {
		mixed, err := p.Remix(channels)
		if err != nil {
			return nil, err
		}
		return mixed.Resample(rate)
	}

	resampled, err := p.Resample(rate)
	if err != nil {
		return nil, err
	}
	return resampled.Remix(channels)
}

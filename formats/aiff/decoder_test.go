// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"math/bits"
	"testing"

	"github.com/ik5/lowlatency/audio"
)

// aiffFile builds a minimal FORM/AIFF file with COMM and SSND chunks.
func aiffFile(sampleRate, channels, bitDepth int, samples []int16) []byte {
	data := new(bytes.Buffer)
	for _, s := range samples {
		binary.Write(data, binary.BigEndian, s)
	}

	comm := new(bytes.Buffer)
	binary.Write(comm, binary.BigEndian, int16(channels))
	binary.Write(comm, binary.BigEndian, uint32(len(samples)/channels))
	binary.Write(comm, binary.BigEndian, int16(bitDepth))

	// 80-bit IEEE extended sample rate
	e := bits.Len64(uint64(sampleRate)) - 1
	binary.Write(comm, binary.BigEndian, uint16(16383+e))
	binary.Write(comm, binary.BigEndian, uint64(sampleRate)<<(63-e))

	body := new(bytes.Buffer)
	body.WriteString("AIFF")
	body.WriteString("COMM")
	binary.Write(body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	binary.Write(body, binary.BigEndian, uint32(8+data.Len()))
	binary.Write(body, binary.BigEndian, uint32(0))
	binary.Write(body, binary.BigEndian, uint32(0))
	body.Write(data.Bytes())

	out := new(bytes.Buffer)
	out.WriteString("FORM")
	binary.Write(out, binary.BigEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func TestDecoder_ValidAiffFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
	}{
		{"mono 8k", 8000, 1},
		{"stereo 44.1k", 44100, 2},
		{"stereo 48k", 48000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(aiffFile(tt.sampleRate, tt.channels, 16, make([]int16, tt.channels*4))))
			if err != nil {
				t.Fatalf("Decode() error = %v, want nil", err)
			}

			if src.SampleRate() != tt.sampleRate {
				t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), tt.sampleRate)
			}
			if src.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", src.Channels(), tt.channels)
			}
		})
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not aiff", []byte("RIFF....WAVEfmt not an aiff file at all"), ErrNotAiffFile},
		{"12 bit", aiffFile(8000, 1, 12, []int16{0, 0}), ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := aiffFile(22050, 1, 16, []int16{1, 2})

	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", src.SampleRate())
	}
}

func TestDecoder_Samples(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, -32768}
	src, err := Decoder{}.Decode(bytes.NewReader(aiffFile(8000, 1, 16, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	pcm, err := audio.ReadAll(context.Background(), src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := []float32{0, 0.5, -0.5, -1}
	if len(pcm.Data) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(pcm.Data), len(want))
	}
	for i := range want {
		if math.Abs(float64(pcm.Data[i]-want[i])) > 0.001 {
			t.Errorf("sample %d = %v, want %v", i, pcm.Data[i], want[i])
		}
	}
}

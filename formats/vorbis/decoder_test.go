// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// mockOggVorbisReader hands out interleaved values like oggvorbis.Reader.
type mockOggVorbisReader struct {
	channels int
	data     []float32
	err      error
}

func (m *mockOggVorbisReader) SampleRate() int { return 48000 }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.data) == 0 {
		return 0, io.EOF
	}

	n := copy(p, m.data)
	m.data = m.data[n:]
	return n, nil
}

func newTestSource(r *mockOggVorbisReader) *source {
	return &source{dec: r, sampleRate: r.SampleRate(), channels: r.Channels()}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		data     []float32
		dstLen   int
		wantN    int
	}{
		{"mono exact", 1, []float32{0.1, 0.2, 0.3}, 3, 3},
		{"stereo short", 2, []float32{0.1, 0.2, 0.3, 0.4}, 8, 4},
		{"stereo odd destination", 2, []float32{0.1, 0.2, 0.3, 0.4}, 3, 2},
		{"5.1 partial", 6, make([]float32, 12), 8, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newTestSource(&mockOggVorbisReader{channels: tt.channels, data: tt.data})

			dst := make([]float32, tt.dstLen)
			n, err := src.ReadSamples(dst)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != tt.wantN {
				t.Errorf("ReadSamples() n = %d, want %d", n, tt.wantN)
			}
			for i := range n {
				if dst[i] != tt.data[i] {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], tt.data[i])
				}
			}
		})
	}
}

func TestSource_EOF(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{channels: 2})

	if n, err := src.ReadSamples(make([]float32, 4)); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_DestinationSmallerThanFrame(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{channels: 2, data: []float32{1, 1}})

	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples() = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_PropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt packet")
	src := newTestSource(&mockOggVorbisReader{channels: 1, err: boom})

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestDecoder_InvalidStream(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("OggS but not really a vorbis stream")))
	if !errors.Is(err, ErrInvalidStream) {
		t.Errorf("Decode() error = %v, want ErrInvalidStream", err)
	}
}

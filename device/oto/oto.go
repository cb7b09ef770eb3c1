// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package oto

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	ebioto "github.com/ebitengine/oto/v3"
	"github.com/ik5/lowlatency/device"
)

const bytesPerSample = 4

// Device plays through the platform audio stack via ebitengine/oto. Only
// one Device may exist per process.
type Device struct {
	ctx        *ebioto.Context
	player     *ebioto.Player
	renderer   atomic.Pointer[device.Renderer] // lock-free Read
	sampleBuf  []float32
	sampleRate int
	channels   int

	mu      sync.Mutex // setup and control only
	started bool
	stop    chan struct{}
	done    chan struct{}
}

// New opens the output in 32-bit float format with roughly one block of
// device buffering.
func New(sampleRate, channels, blockSize int) (*Device, error) {
	op := &ebioto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       ebioto.FormatFloat32LE,
		BufferSize:   time.Duration(blockSize) * time.Second / time.Duration(sampleRate),
	}

	ctx, ready, err := ebioto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", device.ErrDeviceUnavailable, err)
	}
	<-ready

	return &Device{
		ctx:        ctx,
		sampleRate: sampleRate,
		channels:   channels,
		sampleBuf:  make([]float32, blockSize*channels*4),
	}, nil
}

func (o *Device) SampleRate() int { return o.sampleRate }
func (o *Device) Channels() int   { return o.channels }

func (o *Device) Start(r device.Renderer) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.started {
		return device.ErrAlreadyStarted
	}

	o.renderer.Store(&r)
	o.player = o.ctx.NewPlayer(o)
	o.player.Play()
	o.started = true

	o.stop = make(chan struct{})
	o.done = make(chan struct{})
	go o.watch(r, o.stop, o.done)

	return nil
}

// Read is called by oto's mixing goroutine.
func (o *Device) Read(p []byte) (int, error) {
	rp := o.renderer.Load()
	if rp == nil {
		clear(p)
		return len(p), nil
	}

	n := len(p) / bytesPerSample
	n -= n % o.channels

	// Grows only if oto asks for more than expected.
	if len(o.sampleBuf) < n {
		o.sampleBuf = make([]float32, n)
	}
	samples := o.sampleBuf[:n]

	(*rp).Render(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(s))
	}
	return n * bytesPerSample, nil
}

// watch forwards a player failure to the renderer once.
func (o *Device) watch(r device.Renderer, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := o.player.Err(); err != nil {
				r.DeviceError(fmt.Errorf("oto player: %w", err))
				return
			}
		}
	}
}

func (o *Device) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.started {
		return nil
	}

	close(o.stop)
	<-o.done

	o.renderer.Store(nil)
	err := o.player.Close()
	o.player = nil
	o.started = false

	return err
}

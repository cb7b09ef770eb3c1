// SPDX-License-Identifier: EPL-2.0

package device

import (
	"sync"
	"time"
)

// Null renders on a ticker at the device rate and discards the output.
// It stands in for a sound card on headless hosts.
type Null struct {
	sampleRate int
	channels   int
	blockSize  int

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	started bool
}

func NewNull(sampleRate, channels, blockSize int) *Null {
	return &Null{
		sampleRate: sampleRate,
		channels:   channels,
		blockSize:  blockSize,
	}
}

func (n *Null) SampleRate() int { return n.sampleRate }
func (n *Null) Channels() int   { return n.channels }

func (n *Null) Start(r Renderer) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.started {
		return ErrAlreadyStarted
	}

	n.stop = make(chan struct{})
	n.done = make(chan struct{})
	n.started = true

	go n.loop(r, n.stop, n.done)
	return nil
}

func (n *Null) loop(r Renderer, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	period := time.Duration(n.blockSize) * time.Second / time.Duration(n.sampleRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	buf := make([]float32, n.blockSize*n.channels)
	last := time.Now()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			// The ticker drops ticks for a slow receiver.
			if now.Sub(last) > 2*period {
				r.Underrun()
			}
			last = now
			r.Render(buf)
		}
	}
}

func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.started {
		return nil
	}

	close(n.stop)
	<-n.done
	n.started = false
	return nil
}

// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	// ErrDeviceUnavailable is returned when no hardware output can be opened.
	ErrDeviceUnavailable = errors.New("audio output device unavailable")

	// ErrAlreadyStarted is returned by Start on a running device.
	ErrAlreadyStarted = errors.New("device already started")

	// ErrNotStarted is returned when rendering is requested before Start.
	ErrNotStarted = errors.New("device not started")
)

// Renderer is the real-time side of the engine. Render fills out with
// interleaved float32 samples and must not block.
type Renderer interface {
	Render(out []float32)

	// DeviceError reports an asynchronous output failure.
	DeviceError(err error)

	// Underrun reports a block the device could not deliver on time.
	Underrun()
}

// Device drives a Renderer at its own pace until closed. After Close
// returns, Render is no longer called.
type Device interface {
	Start(r Renderer) error
	Close() error
	SampleRate() int
	Channels() int
}

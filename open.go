// SPDX-License-Identifier: EPL-2.0

package lowlatency

import (
	"fmt"

	"github.com/ik5/lowlatency/audio"
	"github.com/ik5/lowlatency/config"
	"github.com/ik5/lowlatency/device"
	"github.com/ik5/lowlatency/device/oto"
	"github.com/ik5/lowlatency/engine"
	"github.com/ik5/lowlatency/formats/aiff"
	"github.com/ik5/lowlatency/formats/mp3"
	"github.com/ik5/lowlatency/formats/vorbis"
	"github.com/ik5/lowlatency/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	return r
}

// NewDevice opens the output named by cfg.Device.
func NewDevice(cfg config.Config) (device.Device, error) {
	switch cfg.Device {
	case config.DeviceOto:
		return oto.New(cfg.SampleRate, cfg.Channels, cfg.BlockSize)
	case config.DeviceNull:
		return device.NewNull(cfg.SampleRate, cfg.Channels, cfg.BlockSize), nil
	default:
		return nil, fmt.Errorf("%w: unknown device %q", config.ErrInvalidConfig, cfg.Device)
	}
}

// Open validates cfg, opens its device and starts an engine with every
// bundled decoder.
func Open(cfg config.Config, opts ...engine.Option) (*engine.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dev, err := NewDevice(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s device: %w", cfg.Device, err)
	}

	e, err := OpenDevice(cfg, dev, opts...)
	if err != nil {
		_ = dev.Close()
		return nil, err
	}
	return e, nil
}

// OpenDevice starts an engine on dev with every bundled decoder. Options
// are applied after the registry, so WithRegistry overrides it.
func OpenDevice(cfg config.Config, dev device.Device, opts ...engine.Option) (*engine.Engine, error) {
	opts = append([]engine.Option{engine.WithRegistry(NewRegistry())}, opts...)
	return engine.New(cfg, dev, opts...)
}

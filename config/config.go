// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Output devices understood by Open.
const (
	DeviceOto  = "oto"
	DeviceNull = "null"
)

var (
	// ErrInvalidConfig is returned by Validate for out of range settings.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds engine and device settings. Every field can be set from a
// LOWLATENCY_* environment variable or the matching config file key.
type Config struct {
	// Output format; decoded assets are converted to it at preload time.
	SampleRate int `env:"LOWLATENCY_SAMPLE_RATE" envDefault:"48000" mapstructure:"sample_rate"`
	Channels   int `env:"LOWLATENCY_CHANNELS" envDefault:"2" mapstructure:"channels"`

	// Frames rendered per device callback.
	BlockSize int `env:"LOWLATENCY_BLOCK_SIZE" envDefault:"256" mapstructure:"block_size"`

	// Voice slots shared by all assets.
	MaxVoices int `env:"LOWLATENCY_MAX_VOICES" envDefault:"32" mapstructure:"max_voices"`

	// When false, play on a saturated asset fails with a capacity error.
	StealOldest bool `env:"LOWLATENCY_STEAL_OLDEST" envDefault:"true" mapstructure:"steal_oldest"`

	// Relative asset paths are resolved against AssetRoot.
	AssetRoot string `env:"LOWLATENCY_ASSET_ROOT" mapstructure:"asset_root"`

	DecodeTimeout  time.Duration `env:"LOWLATENCY_DECODE_TIMEOUT" envDefault:"10s" mapstructure:"decode_timeout"`
	QuiesceTimeout time.Duration `env:"LOWLATENCY_QUIESCE_TIMEOUT" envDefault:"250ms" mapstructure:"quiesce_timeout"`

	// Device is one of DeviceOto or DeviceNull.
	Device string `env:"LOWLATENCY_DEVICE" envDefault:"oto" mapstructure:"device"`

	// Status events buffered before new ones are dropped.
	EventBuffer int `env:"LOWLATENCY_EVENT_BUFFER" envDefault:"64" mapstructure:"event_buffer"`

	LogLevel string `env:"LOWLATENCY_LOG_LEVEL" envDefault:"info" mapstructure:"log_level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		SampleRate:     48000,
		Channels:       2,
		BlockSize:      256,
		MaxVoices:      32,
		StealOldest:    true,
		DecodeTimeout:  10 * time.Second,
		QuiesceTimeout: 250 * time.Millisecond,
		Device:         DeviceOto,
		EventBuffer:    64,
		LogLevel:       "info",
	}
}

// FromEnv returns Default overridden by LOWLATENCY_* environment variables.
func FromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// BlockDuration is the wall-clock length of one render block.
func (c Config) BlockDuration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.BlockSize) * time.Second / time.Duration(c.SampleRate)
}

// Validate reports the first out of range setting.
func (c Config) Validate() error {
	switch {
	case c.SampleRate < 8000 || c.SampleRate > 192000:
		return fmt.Errorf("%w: sample rate %d outside 8000..192000", ErrInvalidConfig, c.SampleRate)
	case c.Channels < 1 || c.Channels > 8:
		return fmt.Errorf("%w: channels %d outside 1..8", ErrInvalidConfig, c.Channels)
	case c.BlockSize < 16 || c.BlockSize > 16384:
		return fmt.Errorf("%w: block size %d outside 16..16384", ErrInvalidConfig, c.BlockSize)
	case c.MaxVoices < 1:
		return fmt.Errorf("%w: max voices must be positive", ErrInvalidConfig)
	case c.DecodeTimeout < 0 || c.QuiesceTimeout < 0:
		return fmt.Errorf("%w: timeouts cannot be negative", ErrInvalidConfig)
	case c.EventBuffer < 0:
		return fmt.Errorf("%w: event buffer cannot be negative", ErrInvalidConfig)
	case c.Device != DeviceOto && c.Device != DeviceNull:
		return fmt.Errorf("%w: unknown device %q", ErrInvalidConfig, c.Device)
	}
	return nil
}

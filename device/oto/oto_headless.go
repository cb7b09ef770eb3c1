// SPDX-License-Identifier: EPL-2.0

//go:build headless

package oto

import "github.com/ik5/lowlatency/device"

// Device is unavailable in headless builds.
type Device struct{}

func New(sampleRate, channels, blockSize int) (*Device, error) {
	return nil, device.ErrDeviceUnavailable
}

func (*Device) SampleRate() int               { return 0 }
func (*Device) Channels() int                 { return 0 }
func (*Device) Start(r device.Renderer) error { return device.ErrDeviceUnavailable }
func (*Device) Close() error                  { return nil }

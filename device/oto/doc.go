// SPDX-License-Identifier: EPL-2.0

// Package oto is the hardware output device, built on ebitengine/oto in
// 32-bit float format. It is kept apart from package device so that code
// using only the device interfaces builds without cgo or ALSA. Builds
// tagged headless replace it with a stub returning
// device.ErrDeviceUnavailable.
package oto

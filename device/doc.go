// SPDX-License-Identifier: EPL-2.0

// Package device provides the outputs that drive the engine's render
// callback.
//
//   - Null renders on a ticker and discards the samples.
//   - File renders on demand and writes a 16-bit WAV file.
//
// The hardware output lives in device/oto so that this package and its
// users build without cgo.
//
// A Device calls Renderer.Render from a single goroutine. Render must not
// block, allocate or perform I/O.
package device

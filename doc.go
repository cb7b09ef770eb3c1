// SPDX-License-Identifier: EPL-2.0

// Package lowlatency wires the playback engine to its decoders and an output
// device.
//
// # Supported Formats
//
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Every asset is decoded once at preload time and converted to the device's
// sample rate and channel count.
//
// # Quick Start
//
//	cfg, _ := config.FromEnv()
//	e, err := lowlatency.Open(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	ctx := context.Background()
//	e.PreloadFX(ctx, "jump", "sounds/jump.wav")
//	e.PreloadAudio(ctx, "music", "music/theme.ogg", 0.6, 1)
//
//	e.Play("jump")
//	e.Loop("music")
//	...
//	e.Stop("music")
//	e.Unload(ctx, "music")
//
// # Devices
//
// Open picks the output from Config.Device: "oto" for the system audio
// stack or "null" for a clocked device that discards output. OpenDevice
// accepts any device.Device, such as an offline device.File.
//
// # Packages
//
//   - engine: asset store, voice pool, mixer and the control API
//   - device: output devices
//   - config: settings, defaults and environment parsing
//   - audio: decoder registry and PCM conversion
//   - formats/*: codec adapters
//   - utils: sample conversion helpers
package lowlatency

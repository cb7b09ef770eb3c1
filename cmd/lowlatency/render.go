// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ik5/lowlatency"
	"github.com/ik5/lowlatency/device"
	"github.com/ik5/lowlatency/engine"
	"github.com/spf13/cobra"
)

var (
	renderOut      string
	renderDuration time.Duration
	renderVolume   float32
	renderLoop     []string

	renderCmd = &cobra.Command{
		Use:   "render [flags] id=path...",
		Short: "Mix assets offline into a WAV file",
		Example: `lowlatency render -o mix.wav -d 5s --loop music music=theme.ogg jump=jump.wav
lowlatency render -o click.wav click.wav`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd, args)
		},
	}
)

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "out.wav", "output WAV file")
	renderCmd.Flags().DurationVarP(&renderDuration, "duration", "d", 2*time.Second, "length of the render")
	renderCmd.Flags().Float32Var(&renderVolume, "volume", 1, "volume of every asset")
	renderCmd.Flags().StringSliceVar(&renderLoop, "loop", nil, "ids to loop instead of playing once")
}

func render(cmd *cobra.Command, args []string) error {
	if renderDuration <= 0 {
		return fmt.Errorf("%w: duration must be positive", errUsage)
	}

	f, err := os.Create(renderOut)
	if err != nil {
		return fmt.Errorf("unable to create output: %w", err)
	}

	dev := device.NewFile(f, cfg.SampleRate, cfg.Channels, cfg.BlockSize)
	e, err := lowlatency.OpenDevice(cfg, dev, engine.WithLogger(logger))
	if err != nil {
		_ = f.Close()
		return err
	}

	if err := mix(cmd, e, args); err != nil {
		_ = e.Close()
		return err
	}
	if err := dev.RenderFor(renderDuration); err != nil {
		_ = e.Close()
		return err
	}

	stats := e.Stats()
	if err := e.Close(); err != nil {
		return err
	}

	st, err := os.Stat(renderOut)
	if err != nil {
		return fmt.Errorf("unable to stat output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %s, %s at %d Hz, %s clipped samples\n",
		renderOut, humanize.Bytes(uint64(st.Size())), renderDuration, cfg.SampleRate,
		humanize.Comma(int64(stats.Clipped)))
	return nil
}

// mix preloads every asset argument and starts it.
func mix(cmd *cobra.Command, e *engine.Engine, args []string) error {
	ids := make([]engine.AssetID, 0, len(args))
	for _, arg := range args {
		id, path, err := parseAsset(arg)
		if err != nil {
			return err
		}
		if err := e.PreloadAudio(cmd.Context(), id, path, renderVolume, 1); err != nil {
			return err
		}
		ids = append(ids, id)
	}

	for _, id := range ids {
		start := e.Play
		if slices.Contains(renderLoop, string(id)) {
			start = e.Loop
		}
		if err := start(id); err != nil {
			return err
		}
	}
	return nil
}

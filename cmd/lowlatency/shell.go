// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
	"github.com/ik5/lowlatency"
	"github.com/ik5/lowlatency/engine"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Control the engine interactively",
	Long: `Open the output device and read commands from a prompt:

  preloadFX <id> <path>
  preloadAudio <id> <path> [volume] [voices]
  play | stop | loop | unload <id>
  volume <0..1>
  status
  quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := lowlatency.Open(cfg, engine.WithLogger(logger))
		if err != nil {
			return err
		}
		defer e.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go logEvents(ctx, e.Events())

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "lowlatency> ",
			AutoComplete:    completer(e),
			InterruptPrompt: "^C",
			EOFPrompt:       "quit",
		})
		if err != nil {
			return fmt.Errorf("opening prompt: %w", err)
		}
		defer rl.Close()

		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			if quit := runLine(ctx, e, rl.Stdout(), line); quit {
				return nil
			}
		}
	},
}

func completer(e *engine.Engine) *readline.PrefixCompleter {
	ids := readline.PcItemDynamic(func(string) []string {
		var names []string
		for _, id := range e.Store().IDs() {
			names = append(names, string(id))
		}
		return names
	})

	return readline.NewPrefixCompleter(
		readline.PcItem("preloadFX"),
		readline.PcItem("preloadAudio"),
		readline.PcItem("play", ids),
		readline.PcItem("stop", ids),
		readline.PcItem("loop", ids),
		readline.PcItem("unload", ids),
		readline.PcItem("volume"),
		readline.PcItem("status"),
		readline.PcItem("quit"),
	)
}

// runLine executes one shell line and reports whether the shell should
// exit.
func runLine(ctx context.Context, e *engine.Engine, w io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit":
		return true
	case "status":
		printStatus(w, e)
		return false
	case "volume":
		if len(fields) != 2 {
			fmt.Fprintln(w, "usage: volume <0..1>")
			return false
		}
		v, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			fmt.Fprintf(w, "bad volume %q\n", fields[1])
			return false
		}
		e.SetMasterVolume(float32(v))
		fmt.Fprintf(w, "master volume %.2f\n", e.Mixer().MasterVolume())
		return false
	}

	cmd, err := parseCommand(fields)
	if err != nil {
		fmt.Fprintln(w, err)
		return false
	}

	res := e.Do(ctx, cmd)
	if res.OK {
		fmt.Fprintln(w, "ok:", res.Message)
	} else {
		fmt.Fprintln(w, "error:", res.Message)
	}
	return false
}

func printStatus(w io.Writer, e *engine.Engine) {
	s := e.Stats()
	fmt.Fprintf(w, "voices %d/%d  blocks %s  frames %s  clipped %s  underruns %d  master %.2f\n",
		s.ActiveVoices, s.Voices,
		humanize.Comma(int64(s.Blocks)), humanize.Comma(int64(s.Frames)),
		humanize.Comma(int64(s.Clipped)), s.Underruns, s.MasterVolume)

	infos := e.Assets()
	if len(infos) == 0 {
		fmt.Fprintln(w, "no assets loaded")
		return
	}

	var total uint64
	for _, a := range infos {
		total += uint64(a.Bytes)
		fmt.Fprintf(w, "  %-16s %-5s %8s  vol %.2f  voices %d/%d  looping %d  %s\n",
			a.ID, a.Kind, humanize.Bytes(uint64(a.Bytes)), a.Volume,
			a.Active, a.Voices, a.Looping, a.Path)
	}
	fmt.Fprintf(w, "%d assets, %s decoded\n", len(infos), humanize.Bytes(total))
}

func logEvents(ctx context.Context, events <-chan engine.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev.Kind {
			case engine.EventDeviceError:
				logger.Error("device", "err", ev.Err)
			case engine.EventClipped:
				logger.Warn("output clipped")
			default:
				logger.Debug(ev.Kind.String(), "id", ev.ID)
			}
		}
	}
}

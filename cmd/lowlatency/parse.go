// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ik5/lowlatency/engine"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
)

// usage lists the engine commands understood by parseCommand.
var usage = map[string]string{
	"preloadFX":    "preloadFX <id> <path>",
	"preloadAudio": "preloadAudio <id> <path> [volume] [voices]",
	"play":         "play <id>",
	"stop":         "stop <id>",
	"loop":         "loop <id>",
	"unload":       "unload <id>",
}

// parseCommand turns a split shell line into an engine command.
func parseCommand(fields []string) (engine.Command, error) {
	if len(fields) == 0 {
		return nil, errUnknownCommand
	}

	name, args := fields[0], fields[1:]
	use, ok := usage[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", errUnknownCommand, name)
	}
	bad := fmt.Errorf("%w: %s", errUsage, use)

	switch name {
	case "preloadFX":
		if len(args) != 2 {
			return nil, bad
		}
		return engine.PreloadFX{ID: engine.AssetID(args[0]), Path: args[1]}, nil

	case "preloadAudio":
		if len(args) < 2 || len(args) > 4 {
			return nil, bad
		}
		cmd := engine.PreloadAudio{ID: engine.AssetID(args[0]), Path: args[1], Volume: 1, Voices: 1}
		if len(args) > 2 {
			v, err := strconv.ParseFloat(args[2], 32)
			if err != nil {
				return nil, fmt.Errorf("%w: volume %q", errUsage, args[2])
			}
			cmd.Volume = float32(v)
		}
		if len(args) > 3 {
			n, err := strconv.Atoi(args[3])
			if err != nil {
				return nil, fmt.Errorf("%w: voices %q", errUsage, args[3])
			}
			cmd.Voices = n
		}
		return cmd, nil
	}

	if len(args) != 1 {
		return nil, bad
	}
	id := engine.AssetID(args[0])

	switch name {
	case "play":
		return engine.Play{ID: id}, nil
	case "stop":
		return engine.Stop{ID: id}, nil
	case "loop":
		return engine.Loop{ID: id}, nil
	default:
		return engine.Unload{ID: id}, nil
	}
}

// parseAsset splits an "id=path" render argument. A bare path is named
// after its file name without the extension.
func parseAsset(arg string) (engine.AssetID, string, error) {
	id, path, ok := strings.Cut(arg, "=")
	if !ok {
		path = arg
		base := filepath.Base(path)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if id == "" || path == "" {
		return "", "", fmt.Errorf("%w: asset %q, want id=path", errUsage, arg)
	}
	return engine.AssetID(id), path, nil
}

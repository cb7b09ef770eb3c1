// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/ik5/lowlatency/config"
	"github.com/spf13/cobra"
)

const defaultConfig = `# output format; assets are converted to it at preload time
sample_rate: 48000
channels: 2
# frames per device callback
block_size: 256
# voice slots shared by every asset
max_voices: 32
# restart the oldest voice when an asset has none free
steal_oldest: true
# relative asset paths are resolved against this directory
asset_root: ""
decode_timeout: 10s
quiesce_timeout: 250ms
# oto or null
device: oto
event_buffer: 64
# debug, info, warn or error
log_level: info
`

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printConfig(cmd.OutOrStdout(), cfg)
		},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default config file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ensureConfigFile(configFile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config file:", configFile)
			return nil
		},
	}
)

func init() {
	configCmd.AddCommand(configInitCmd)
}

func printConfig(w io.Writer, c config.Config) error {
	_, err := fmt.Fprintf(w, `sample_rate: %d
channels: %d
block_size: %d (%s)
max_voices: %d
steal_oldest: %t
asset_root: %q
decode_timeout: %s
quiesce_timeout: %s
device: %s
event_buffer: %d
log_level: %s
`, c.SampleRate, c.Channels, c.BlockSize, c.BlockDuration(), c.MaxVoices,
		c.StealOldest, c.AssetRoot, c.DecodeTimeout, c.QuiesceTimeout,
		c.Device, c.EventBuffer, c.LogLevel)
	return err
}

func ensureConfigFile(name string) error {
	if name == "" {
		return errors.New("no configuration directory found, use --config")
	}

	if ext := path.Ext(name); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(name), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}

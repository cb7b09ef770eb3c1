// SPDX-License-Identifier: EPL-2.0

// Command lowlatency drives the playback engine from a shell or renders a
// mix to a WAV file.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ik5/lowlatency/config"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version as provided by the build.
	Version = ""

	configFile string
	debug      bool
	deviceName string
	assetRoot  string

	cfg    config.Config
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "lowlatency"})

	rootCmd = &cobra.Command{
		Use:              "lowlatency",
		Short:            "Low-latency sound effect and music playback",
		SilenceUsage:     true,
		TraverseChildren: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadConfig()
		},
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	tryLoadConfigFromDefaultPlaces()

	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every control operation")
	rootCmd.PersistentFlags().StringVar(&deviceName, "device", "", "output device (oto or null)")
	rootCmd.PersistentFlags().StringVar(&assetRoot, "assets", "", "directory relative asset paths are resolved against")

	rootCmd.AddCommand(shellCmd, renderCmd, configCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "lowlatency")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		log.Warn("Could not find configuration directory", "err", err)
	}

	if c := os.Getenv("LOWLATENCY_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("lowlatency")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("lowlatency")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		configFile = used
	} else if len(dirs) > 0 {
		configFile = filepath.Join(dirs[0], "lowlatency.yml")
	}
}

// loadConfig layers defaults, LOWLATENCY_* variables, the config file and
// flags, in that order of precedence from lowest to highest.
func loadConfig() error {
	if configFile != "" && configFile != viper.ConfigFileUsed() {
		if _, err := os.Stat(configFile); err == nil {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("reading %s: %w", configFile, err)
			}
		}
	}

	c, err := config.FromEnv()
	if err != nil {
		return err
	}
	if err := viper.Unmarshal(&c); err != nil {
		return fmt.Errorf("decoding configuration: %w", err)
	}
	if deviceName != "" {
		c.Device = deviceName
	}
	if assetRoot != "" {
		c.AssetRoot = assetRoot
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: log level %q", config.ErrInvalidConfig, cfg.LogLevel)
	}
	if debug {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	logger.SetReportTimestamp(level == log.DebugLevel)

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("Using configuration file", "path", used)
	}
	return nil
}

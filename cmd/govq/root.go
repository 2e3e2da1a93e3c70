package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/govq"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	metricsOut string
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "govq",
		Short:        "govq - LBG vector quantization for raster images",
		Long:         `govq trains one codebook per image channel with the generalized Lloyd algorithm and writes the reconstructed image.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&rf.configPath, "config", "", "YAML config file")
	pf.StringVar(&rf.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&rf.logFormat, "log-format", "", "log format (text, json)")
	pf.StringVar(&rf.metricsOut, "metrics-out", "", "write Prometheus metrics in text format to this file")

	cmd.AddCommand(newCompressCmd(rf))
	return cmd
}

// loadConfig reads the config file, if any, and applies the logging flags.
func (rf *rootFlags) loadConfig() (govq.Config, error) {
	cfg := govq.DefaultConfig()
	if rf.configPath != "" {
		var err error
		if cfg, err = govq.LoadConfig(rf.configPath); err != nil {
			return govq.Config{}, err
		}
	}
	if rf.logLevel != "" {
		cfg.Log.Level = rf.logLevel
	}
	if rf.logFormat != "" {
		cfg.Log.Format = rf.logFormat
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg govq.LogConfig) (*govq.Logger, error) {
	level := slog.LevelInfo
	if cfg.Level != "" {
		var err error
		if level, err = govq.ParseLevel(cfg.Level); err != nil {
			return nil, err
		}
	}
	return govq.NewLoggerFor(cmd.ErrOrStderr(), cfg.Format, level)
}

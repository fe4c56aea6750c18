package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/bitlab/compat"
	"github.com/wippyai/bitlab/config"
	"github.com/wippyai/bitlab/schedule"
	"github.com/wippyai/bitlab/segment"
)

// app holds the state shared by every command.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	out    *printer
	config string
	level  string
	file   string
	json   bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "bitlab",
		Short:         "Explore number bases, fixed-width integers and bitwise arithmetic",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.config, "config", "c", "", "YAML settings file")
	flags.BoolVar(&a.json, "json", false, "print results as JSON")
	flags.StringVar(&a.level, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.file, "log-file", "", "write logs to this file")

	root.AddCommand(
		newConvertCmd(a),
		newTypesCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newToggleCmd(a),
		newBitwiseCmd(a),
		newAddCmd(a),
		newSegmentCmd(a),
		newCounterCmd(a),
		newTUICmd(a),
	)
	return root
}

// setup loads the config, applies flag overrides and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.config != "" {
		loaded, err := config.Load(a.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.level != "" {
		cfg.Log.Level = a.level
	}
	if a.file != "" {
		cfg.Log.File = a.file
	}
	a.cfg = cfg

	log, err := newLogger(cfg.Log, cmd.Name() == "tui")
	if err != nil {
		return err
	}
	a.log = log
	compat.SetLogger(log.Named("compat"))
	schedule.SetLogger(log.Named("schedule"))
	segment.SetLogger(log.Named("segment"))

	a.out = newPrinter(cmd.OutOrStdout(), a.json)
	return nil
}

// newLogger builds a logger writing to stderr, or only to the log file when
// one is set. Full-screen commands log nowhere without a file.
func newLogger(lc config.LogConfig, fullScreen bool) (*zap.Logger, error) {
	level, err := lc.ZapLevel()
	if err != nil {
		return nil, err
	}
	if lc.File == "" && fullScreen {
		return zap.NewNop(), nil
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if lc.File != "" {
		zc = zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		zc.OutputPaths = []string{lc.File}
		zc.ErrorOutputPaths = []string{lc.File}
	}
	return zc.Build()
}

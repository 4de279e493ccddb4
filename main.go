//go:build linux && (amd64 || arm64)

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/smazurov/abiprobe/cmd"
	"github.com/smazurov/abiprobe/internal/config"
	"github.com/smazurov/abiprobe/internal/conformance"
	"github.com/smazurov/abiprobe/internal/events"
	"github.com/smazurov/abiprobe/internal/logging"
	"github.com/smazurov/abiprobe/internal/systemd"
	"github.com/smazurov/abiprobe/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"abiprobe.toml"`

	// Verification settings
	Baseline      string `help:"Baseline manifest to verify against" short:"b" default:"baseline.toml" toml:"verify.baseline" env:"VERIFY_BASELINE"`
	Watch         bool   `help:"Keep running and re-verify when the baseline changes" default:"false" toml:"verify.watch" env:"VERIFY_WATCH"`
	WatchDebounce string `help:"Delay before re-verifying after a change" default:"500ms" toml:"verify.watch_debounce" env:"VERIFY_WATCH_DEBOUNCE"`

	// Metrics settings
	Textfile string `help:"Write Prometheus gauges to this file (node-exporter textfile collector)" toml:"metrics.textfile" env:"METRICS_TEXTFILE"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingJournal bool   `help:"Send logs to the systemd journal when available" default:"true" toml:"logging.journal" env:"LOGGING_JOURNAL"`
	LoggingProbe   string `help:"Record fill logging level" default:"info" toml:"logging.modules.probe" env:"LOGGING_PROBE"`
	LoggingVerify  string `help:"Verification logging level" default:"info" toml:"logging.modules.verify" env:"LOGGING_VERIFY"`
	LoggingDevices string `help:"Live device check logging level" default:"info" toml:"logging.modules.devices" env:"LOGGING_DEVICES"`
	LoggingConfig  string `help:"Config and baseline logging level" default:"info" toml:"logging.modules.config" env:"LOGGING_CONFIG"`
}

func main() {
	var cli humacli.CLI

	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		loadErr := config.LoadConfig(opts, cli.Root())

		logging.Initialize(logging.Config{
			Level:   opts.LoggingLevel,
			Format:  opts.LoggingFormat,
			Journal: opts.LoggingJournal,
			Modules: map[string]string{
				logging.ModuleProbe:   opts.LoggingProbe,
				logging.ModuleVerify:  opts.LoggingVerify,
				logging.ModuleDevices: opts.LoggingDevices,
				logging.ModuleConfig:  opts.LoggingConfig,
			},
		})

		logger := logging.GetLogger(logging.ModuleVerify)
		if loadErr != nil {
			logging.GetLogger(logging.ModuleConfig).Warn("Failed to load config", "path", opts.Config, "error", loadErr)
		}

		debounce, err := time.ParseDuration(opts.WatchDebounce)
		if err != nil {
			logger.Warn("Invalid watch debounce, using default", "value", opts.WatchDebounce, "error", err)
			debounce = 500 * time.Millisecond
		}

		bus := events.New()
		notifier := systemd.NewNotifier(logger)
		runner := &conformance.Runner{
			BaselinePath: opts.Baseline,
			Textfile:     opts.Textfile,
			Logger:       logger,
			Events:       bus,
		}
		ctx, cancel := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			logger.Info("Starting abiprobe", "version", version.String(), "baseline", opts.Baseline)

			rep, err := runner.CheckFile()
			if err != nil {
				logger.Error("Failed to verify", "error", err)
				os.Exit(2)
			}
			if !opts.Watch {
				if !rep.OK() {
					os.Exit(1)
				}
				return
			}

			detach := notifier.Attach(bus)
			defer detach()
			notifier.Status("%d records checked, %d mismatches", rep.Checked, len(rep.Mismatches))
			notifier.Ready()

			if err := runner.Watch(ctx, debounce); err != nil {
				logger.Error("Baseline watcher failed", "error", err)
				os.Exit(2)
			}
		})

		hooks.OnStop(func() {
			slog.Debug("Shutting down")
			notifier.Stopping()
			cancel()
		})
	})

	cmd.Register(cli.Root())
	cli.Root().Version = version.String()

	// Run the CLI
	cli.Run()
}

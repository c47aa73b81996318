package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/wx-labs/wxship/internal/adapters/spool"
	"github.com/wx-labs/wxship/internal/cliconfig"
	"github.com/wx-labs/wxship/internal/domain"
	"github.com/wx-labs/wxship/pkg/log"
	"github.com/wx-labs/wxship/pkg/wxship"
)

const helpBanner = `
 █     █░▒██   ██▒  ██████  ██░ ██  ██▓ ██▓███
▓█░ █ ░█░▒▒ █ █ ▒░▒██    ▒ ▓██░ ██▒▓██▒▓██░  ██▒
▒█░ █ ░█ ░░  █   ░░ ▓██▄   ▒██▀▀██░▒██▒▓██░ ██▓▒
░█░ █ ░█  ░ █ █ ▒   ▒   ██▒░▓█ ░██ ░██░▒██▄█▓▒ ▒
░░██▒██▓ ▒██▒ ▒██▒▒██████▒▒░▓█▒░██▓░██░▒██▒ ░  ░
░ ▓░▒ ▒  ▒▒ ░ ░▓ ░▒ ▒▓▒ ▒ ░ ▒ ░░▒░▒░▓  ▒▓▒░ ░  ░
  ▒ ░ ░  ░░   ░▒ ░░ ░▒  ░ ░ ▒ ░▒░ ░ ▒ ░░▒ ░
`

const helpDescription = `
Ship weather-station archive records to WindFinder in the background.

Highlights:
  - Watches a spool directory for new archive records and uploads the
    freshest one, dropping stale backlog instead of flooding the server.
  - Fixed-wait retries with a bounded number of attempts per record.
  - Configure via file, WXSHIP_* environment variables, or flags.
  - Credentials never appear in logs.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  wxship --station-id KXYZ123 --password hunter2 --spool-dir /var/spool/wxship
  wxship --config $HOME/.wxship/config.toml --skip-upload
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zl := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "wxship",
		Short:   "Ship weather-station archive records to WindFinder in the background",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.wxship/config.toml), then apply flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (WXSHIP_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Validate and set derived defaults
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Log configuration (masking password)
			logCfg := cfg
			if len(logCfg.Password) > 0 {
				logCfg.Password = "*****"
			}
			zl.Info().Interface("config", logCfg).Msg("configuration")

			libCfg := wxship.Config{
				StationID:    cfg.StationID,
				Password:     cfg.Password,
				ServerURL:    cfg.ServerURL,
				PostInterval: cfg.PostInterval,
				MaxBacklog:   cfg.MaxBacklog,
				StaleAge:     cfg.StaleAge,
				Timeout:      cfg.Timeout,
				MaxTries:     cfg.MaxTries,
				RetryWait:    cfg.RetryWait,
				SkipUpload:   cfg.SkipUpload,
				LogSuccess:   cfg.LogSuccess,
				LogFailure:   cfg.LogFailure,
				Timezone:     cfg.Location(),
			}

			logger := log.NewZerologAdapterWithLogger(zl)

			svc, err := wxship.New(libCfg, wxship.WithLogger(logger))
			if err != nil {
				if errors.Is(err, wxship.ErrMissingCredentials) {
					// A station without credentials cannot upload. Say so
					// once and exit cleanly rather than looping on failures.
					zl.Warn().Msg("station id and password not set, uploads disabled")
					return nil
				}
				return fmt.Errorf("create wxship: %w", err)
			}

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := svc.Start(ctx); err != nil {
				return fmt.Errorf("start wxship: %w", err)
			}

			// Feed spooled archive records into the service
			watcher := spool.NewWatcher(cfg.SpoolDir, func(rec domain.ArchiveRecord) {
				svc.OnNewRecord(rec)
			}, logger)

			watchDone := make(chan error, 1)
			go func() {
				watchDone <- watcher.Run(ctx)
			}()

			// Detect crash of the delivery worker
			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						status := svc.Status()
						if status == wxship.StateStopped || status == wxship.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			select {
			case <-sigCh:
				zl.Info().Msg("received signal, stopping...")
			case err := <-watchDone:
				if err != nil && !errors.Is(err, context.Canceled) {
					zl.Error().Err(err).Msg("spool watcher failed")
				}
			case <-doneCh:
				if svc.Status() == wxship.StateCrashed {
					zl.Error().Msg("wxship crashed")
				}
			}

			cancel()
			if err := svc.Stop(); err != nil {
				return fmt.Errorf("stop wxship: %w", err)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.wxship/config.toml)")
	root.Flags().StringVar(&cfg.StationID, "station-id", cfg.StationID, "WindFinder station id")
	root.Flags().StringVar(&cfg.Password, "password", cfg.Password, "WindFinder station password")
	root.Flags().StringVar(&cfg.SpoolDir, "spool-dir", cfg.SpoolDir, "directory watched for spooled archive records (*.json)")

	root.Flags().StringVar(&cfg.ServerURL, "server-url", cfg.ServerURL, fmt.Sprintf("upload endpoint (defaults to %s; override only for testing)", cliconfig.DefaultServerURL))
	if err := root.Flags().MarkHidden("server-url"); err != nil {
		zl.Info().Err(err).Msg("failed to hide server-url flag")
	}

	root.Flags().DurationVar(&cfg.PostInterval, "post-interval", cfg.PostInterval, "minimum spacing between upload attempts")
	root.Flags().DurationVar(&cfg.StaleAge, "stale-age", cfg.StaleAge, "drop records older than this (0 disables)")
	root.Flags().IntVar(&cfg.MaxBacklog, "max-backlog", cfg.MaxBacklog, "maximum queued records (0 is unbounded)")
	root.Flags().IntVar(&cfg.MaxTries, "max-tries", cfg.MaxTries, "attempts per record before giving up")
	root.Flags().DurationVar(&cfg.RetryWait, "retry-wait", cfg.RetryWait, "wait between attempts on the same record")
	root.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP timeout per attempt")
	root.Flags().StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA timezone for observation timestamps (default: local)")

	root.Flags().BoolVar(&cfg.SkipUpload, "skip-upload", cfg.SkipUpload, "build and log requests without sending them")
	root.Flags().BoolVar(&cfg.LogSuccess, "log-success", cfg.LogSuccess, "log each successful upload")
	root.Flags().BoolVar(&cfg.LogFailure, "log-failure", cfg.LogFailure, "log each abandoned or dropped record")

	if err := root.Execute(); err != nil {
		zl.Error().Err(err).Msg("wxship")
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sticky/internal/config"
	"github.com/vango-dev/sticky/internal/errors"
	"github.com/vango-dev/sticky/pkg/server"
)

type serveOptions struct {
	configPath string
	port       int
	host       string
	watch      bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sticky demo page and session socket",
		Long: `Serve the demo page, the browser hook and the WebSocket endpoint.

Configuration is read from sticky.json, sticky.yaml or sticky.yml in the
working directory unless --config is given. With --watch, edits to the
file reconfigure every connected session.

Examples:
  sticky serve
  sticky serve --port=8080 --watch
  sticky serve --config=deploy/sticky.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: sticky.json in the working directory)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload the config file on change")

	return cmd
}

// loadConfig reads the explicit path, or the working directory. A missing
// file in the working directory falls back to defaults.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.LoadFromWorkingDir()
	if errors.Code(err) == "E100" {
		warn(cmd, "No config file found, using defaults")
		return config.New(), nil
	}
	return cfg, err
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	cfg, err := loadConfig(cmd, opts.configPath)
	if err != nil {
		return err
	}

	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	read, write, ping := cfg.Timeouts()
	serverCfg := &server.ServerConfig{
		Address:      cfg.Address(),
		Sticky:       cfg.Element(),
		ReadTimeout:  read,
		WriteTimeout: write,
		PingInterval: ping,
	}

	var serverOpts []server.Option
	if cfg.Metrics.Enabled {
		serverCfg.MetricsPath = cfg.Metrics.Path
		serverOpts = append(serverOpts, server.WithMetrics(server.NewMetrics()))
	}
	srv := server.New(serverCfg, serverOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		if cfg.Path() == "" {
			warn(cmd, "--watch needs a config file, ignoring")
		} else {
			updates, err := config.Watch(ctx, cfg.Path(), logger)
			if err != nil {
				return err
			}
			go func() {
				for next := range updates {
					srv.Configure(next.Element())
				}
			}()
		}
	}

	success(cmd, "Listening on http://%s", cfg.Address())
	if err := srv.Run(ctx); err != nil {
		return errors.New("E301").Wrap(err)
	}
	return nil
}

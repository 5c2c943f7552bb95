package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/regform/internal/config"
	"github.com/vango-dev/regform/internal/errors"
	"github.com/vango-dev/regform/pkg/middleware"
	"github.com/vango-dev/regform/pkg/server"
	"github.com/vango-dev/regform/pkg/submit"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		dev        bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the registration server",
		Long: `Serve the registration page and validate it over a WebSocket.

Configuration is read from regform.json (or regform.yaml) in the working
directory, or from --config. REGFORM_* environment variables override
file values.

Examples:
  regform serve
  regform serve --addr 0.0.0.0:9000
  regform serve --config deploy/regform.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			sc, cleanup, err := buildServerConfig(cmd.Context(), cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()
			if addr != "" {
				sc.Address = addr
			}
			sc.DevMode = dev

			printBanner(cmd.OutOrStdout())
			success(cmd.OutOrStdout(), "Listening on http://%s", sc.Address)
			if sc.Gatherer != nil {
				info(cmd.OutOrStdout(), "Metrics at %s", sc.MetricsRoute)
			}

			return server.New(sc).Run()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to regform.json or regform.yaml")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Pretty-print HTML and disable client caching")

	return cmd
}

// loadConfig resolves and validates the configuration.
func loadConfig(path string) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(path, wd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the slog logger described by cfg and installs it as
// the default.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// buildServerConfig is the composition root: it turns the file
// configuration into a server configuration with logging, metrics,
// tracing and the submit chain wired in.
func buildServerConfig(ctx context.Context, cfg *config.Config, logOut io.Writer) (*server.ServerConfig, func(), error) {
	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return nil, nil, err
	}

	sc := server.DefaultServerConfig()
	sc.Address = cfg.Address()
	sc.AllowedOrigins = cfg.Server.AllowedOrigins
	sc.SessionConfig.ReadTimeout = cfg.ReadTimeout()
	sc.SessionConfig.WriteTimeout = cfg.WriteTimeout()
	sc.FormSelector = cfg.Form.Selector
	sc.Containers = cfg.Form.Containers
	sc.StyleSheets = cfg.Form.StyleSheets

	bindings, err := cfg.Form.RoleBindings()
	if err != nil {
		return nil, nil, err
	}
	sc.Bindings = bindings

	if cfg.Form.MarkupFile != "" {
		markup, err := server.FileMarkup(cfg.MarkupPath(), cfg.Form.Sanitize)
		if err != nil {
			return nil, nil, errors.New("E104").WithDetail(cfg.MarkupPath()).Wrap(err)
		}
		sc.Markup = markup
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		sc.Metrics = middleware.NewMetrics(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
		sc.Gatherer = reg
		sc.MetricsRoute = cfg.Metrics.Path
	}

	shutdown, err := setupTracing(ctx, cfg.Tracing)
	if err != nil {
		return nil, nil, err
	}
	sc.SubmitMiddleware = []submit.Middleware{
		submit.Logged(logger.With("component", "submit")),
	}
	if cfg.Tracing.Enabled {
		otelOpts := []middleware.OTelOption{
			middleware.WithTracerName(cfg.Tracing.TracerName),
			middleware.WithIncludeEmail(cfg.Tracing.IncludeEmail),
		}
		sc.SubmitMiddleware = append(sc.SubmitMiddleware, middleware.OpenTelemetry(otelOpts...))
		sc.Tracer = middleware.NewEventTracer(otelOpts...)
	}

	cleanup := func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("tracer shutdown", "error", err)
		}
	}
	return sc, cleanup, nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chemgpt/gateway/internal/backends"
	"github.com/chemgpt/gateway/internal/config"
	"github.com/chemgpt/gateway/internal/infrastructure/monitoring/logging"
	"github.com/chemgpt/gateway/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/chemgpt/gateway/internal/interfaces/http"
	"github.com/chemgpt/gateway/internal/interfaces/http/handlers"
	"github.com/chemgpt/gateway/internal/interfaces/http/middleware"
	"github.com/chemgpt/gateway/internal/routing"
)

// NewServeCommand runs the gateway until SIGINT or SIGTERM.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			logger, err := logging.NewLogger(cfg.Log)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			server, err := BuildServer(cfg, logger)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-quit:
				logger.Info("received signal", logging.String("signal", sig.String()))
			}

			return server.Stop(context.Background())
		},
	}
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// BuildServer wires the full gateway from configuration: backend clients,
// completion fallback, dispatcher, metrics, handlers and the route tree.
func BuildServer(cfg *config.Config, logger logging.Logger) (*httpserver.Server, error) {
	clientOpts := func(name string) []backends.Option {
		return []backends.Option{
			backends.WithTimeout(cfg.Backends.Timeout),
			backends.WithRetryMax(cfg.Backends.RetryMax),
			backends.WithLogger(logger.Named(name)),
		}
	}

	extractHTTP, err := backends.NewHTTPClient(cfg.Backends.ExtractURL, clientOpts("extract")...)
	if err != nil {
		return nil, fmt.Errorf("extract backend: %w", err)
	}
	spectroHTTP, err := backends.NewHTTPClient(cfg.Backends.SpectroURL, clientOpts("spectro")...)
	if err != nil {
		return nil, fmt.Errorf("spectro backend: %w", err)
	}
	retroHTTP, err := backends.NewHTTPClient(cfg.Backends.RetroURL, clientOpts("retro")...)
	if err != nil {
		return nil, fmt.Errorf("retro backend: %w", err)
	}

	extract := backends.NewExtractClient(extractHTTP)
	spectro := backends.NewSpectroClient(spectroHTTP)
	retro := backends.NewRetroClient(retroHTTP)

	completion, err := backends.NewCompletionClient(backends.CompletionConfig{
		BaseURL:     cfg.Fallback.BaseURL,
		APIKey:      cfg.Fallback.APIKey,
		Model:       cfg.Fallback.Model,
		Timeout:     cfg.Fallback.Timeout,
		MaxTokens:   cfg.Fallback.MaxTokens,
		Temperature: cfg.Fallback.Temperature,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("completion fallback: %w", err)
	}

	var metrics *prometheus.Metrics
	if cfg.Metrics.Enabled {
		metrics = prometheus.NewMetrics(cfg.Metrics.Namespace)
	}

	var recorder routing.Recorder
	if metrics != nil {
		recorder = metrics
	}
	dispatcher := routing.NewDispatcher(extract, spectro, retro, completion, recorder, logger)

	routerCfg := httpserver.RouterConfig{
		ChatHandler:  handlers.NewChatHandler(dispatcher, chatMetrics(metrics), logger),
		ProxyHandler: handlers.NewProxyHandler(extract, spectro, retro, logger),
		HealthHandler: handlers.NewHealthHandler(Version,
			extract, spectro, retro),
		CORS: &middleware.CORSConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: middleware.DefaultCORSConfig().AllowedMethods,
			AllowedHeaders: middleware.DefaultCORSConfig().AllowedHeaders,
			MaxAge:         middleware.DefaultCORSConfig().MaxAge,
		},
		Logger: logger,
	}
	if metrics != nil {
		routerCfg.HTTPObserver = metrics
		routerCfg.MetricsHandler = metrics.Handler()
	}

	router := httpserver.NewRouter(routerCfg)

	return httpserver.NewServer(httpserver.ServerConfig{
		Addr:            fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, logger), nil
}

// chatMetrics avoids handing a typed nil to the handler's interface field.
func chatMetrics(m *prometheus.Metrics) handlers.ChatMetrics {
	if m == nil {
		return nil
	}
	return m
}

// Command agentwire runs the streaming agent backend over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentwire"
	"github.com/hupe1980/agentwire/artifact"
	"github.com/hupe1980/agentwire/config"
	"github.com/hupe1980/agentwire/core"
	"github.com/hupe1980/agentwire/logging"
	"github.com/hupe1980/agentwire/model"
	anthropicmodel "github.com/hupe1980/agentwire/model/anthropic"
	openaimodel "github.com/hupe1980/agentwire/model/openai"
	"github.com/hupe1980/agentwire/server"
	"github.com/hupe1980/agentwire/store"
)

func main() {
	root := &cobra.Command{
		Use:           "agentwire",
		Short:         "Streaming agent run backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg := config.Load()

	logger := logging.NewSlogLogger(cfg.LogLevel, cfg.LogFormat)

	messages, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open message store: %w", err)
	}
	defer messages.Close()

	cache := artifact.NewInMemoryCache(func(o *artifact.Options) {
		o.TTL = cfg.ArtifactTTL
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache.StartSweeper(ctx, cfg.SweepInterval)

	w := agentwire.New(func(o *agentwire.Options) {
		o.Cache = cache
		o.Store = messages
		o.Generators = generatorFactory(cfg)
		o.MaxConcurrentRuns = cfg.MaxConcurrentRuns
		o.GenerateTimeout = cfg.GenerateTimeout
		o.Logger = logger
	})

	h := server.NewHandler(w.Runner(), messages, cache, func(o *server.HandlerOptions) {
		o.Logger = logger
	})

	srv := server.New(h, func(o *server.Options) {
		o.Addr = ":" + cfg.Port
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("server listening", "addr", ":"+cfg.Port, "provider", cfg.DefaultProvider)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// generatorFactory resolves the model backend per run, falling back to the
// configured default provider when the run names none.
func generatorFactory(cfg *config.Config) func(modelID, provider string) (core.Generator, error) {
	return func(modelID, provider string) (core.Generator, error) {
		if provider == "" {
			provider = cfg.DefaultProvider
		}
		if modelID == "" {
			modelID = cfg.DefaultModel
		}

		switch provider {
		case "anthropic":
			return anthropicmodel.New(func(o *anthropicmodel.Options) {
				if modelID != "" {
					o.Model = anthropic.Model(modelID)
				}
			}), nil
		case "openai":
			return openaimodel.New(func(o *openaimodel.Options) {
				if modelID != "" {
					o.Model = modelID
				}
			}), nil
		case "mock":
			return model.NewMockGenerator(), nil
		default:
			return nil, fmt.Errorf("unknown model provider %q", provider)
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/config"
	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/engine"
	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/events"
	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	ConfigPath string
	Addr       string
	NATSURL    string
	Locale     string
	EnvFile    string

	// Listener, when set, is used instead of listening on Addr (for testing).
	Listener net.Listener

	// Publisher, when set, replaces the NATS/no-op publisher (for testing).
	Publisher events.Publisher
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the engine over HTTP",
		Long: `Load the simulator config, build the engine and serve it over HTTP
until interrupted.

Flags override environment variables, which override built-in defaults:
  --config    SIMULATOR_CONFIG     (config/simulator.yml)
  --addr      SIMULATOR_HTTP_ADDR  (0.0.0.0:8000)
  --nats-url  SIMULATOR_NATS_URL   (unset: ideas are not published)
  --locale    SIMULATOR_LOCALE     (en)
Log level comes from SIMULATOR_LOG_LEVEL (info); --verbose forces debug.

Exit codes:
  0 - Stopped by signal
  1 - Server error
  2 - Invalid config or unreachable NATS

Example:
  simulator serve
  simulator serve --config ./simulator.toml --addr 127.0.0.1:9000
  simulator serve --nats-url nats://localhost:4222 --locale es`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "simulator config file (YAML or TOML)")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "HTTP listen address")
	cmd.Flags().StringVar(&opts.NATSURL, "nats-url", "", "NATS server URL for idea events")
	cmd.Flags().StringVar(&opts.Locale, "locale", "", "summary locale (en|es)")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load if present")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	settings, err := config.LoadServer(opts.EnvFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load environment", err)
	}
	applyServeFlags(opts, settings)

	logger := opts.newLogger(settings.LogLevel, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	logger.Info("loading config", "path", settings.ConfigPath)
	sim, err := config.Load(settings.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	eng, err := engine.New(sim.Params(),
		engine.WithLocale(settings.Locale),
		engine.WithLogger(logger),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid simulator config", err)
	}
	logger.Info("engine ready",
		"bot_count", sim.BotCount,
		"idea_rate", sim.IdeaRate,
		"network_layers", len(sim.NetworkLayers),
		"locale", eng.Locale(),
	)

	publisher, err := newPublisher(opts, settings.NATSURL, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to connect to NATS", err)
	}
	defer func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("error closing publisher", "error", closeErr)
		}
	}()

	srv := server.New(eng,
		server.WithPublisher(publisher),
		server.WithLogger(logger),
	)

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if opts.Listener != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Simulator server running on http://%s\n", opts.Listener.Addr())
		err = srv.Serve(ctx, opts.Listener)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Simulator server running on http://%s\n", settings.HTTPAddr)
		err = srv.ListenAndServe(ctx, settings.HTTPAddr)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "server error", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}

// applyServeFlags overlays explicitly given flags on the environment settings.
func applyServeFlags(opts *ServeOptions, settings *config.Server) {
	if opts.ConfigPath != "" {
		settings.ConfigPath = opts.ConfigPath
	}
	if opts.Addr != "" {
		settings.HTTPAddr = opts.Addr
	}
	if opts.NATSURL != "" {
		settings.NATSURL = opts.NATSURL
	}
	if opts.Locale != "" {
		settings.Locale = opts.Locale
	}
}

func newPublisher(opts *ServeOptions, natsURL string, logger *slog.Logger) (events.Publisher, error) {
	if opts.Publisher != nil {
		return opts.Publisher, nil
	}
	if natsURL == "" {
		logger.Info("NATS not configured, ideas will not be published")
		return &events.NoopPublisher{}, nil
	}
	pub, err := events.NewNATSPublisher(natsURL)
	if err != nil {
		return nil, err
	}
	logger.Info("publishing ideas", "nats_url", natsURL, "topic", events.TopicIdeasGenerated)
	return pub, nil
}

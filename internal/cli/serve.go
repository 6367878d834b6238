package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/skillshare/internal/applog"
	"github.com/SergeyParamoshkin/skillshare/internal/config"
	"github.com/SergeyParamoshkin/skillshare/internal/server"
)

// ServeOptions override configuration loaded from the environment when set.
type ServeOptions struct {
	Addr         string
	DiagAddr     string
	Store        string
	MongoURI     string
	StoreTimeout time.Duration
}

func NewServeCommand(root *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and diagnostics servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.EnvFile)
			if err != nil {
				return err
			}
			opts.apply(&cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "application listen address")
	cmd.Flags().StringVar(&opts.DiagAddr, "diag-addr", "", "diagnostics (metrics) listen address")
	cmd.Flags().StringVar(&opts.Store, "store", "", "document store: mongo or memory")
	cmd.Flags().StringVar(&opts.MongoURI, "mongo-uri", "", "MongoDB connection string")
	cmd.Flags().DurationVar(&opts.StoreTimeout, "store-timeout", 0, "timeout for connecting to the store")

	return cmd
}

func (o *ServeOptions) apply(cfg *config.Config) {
	if o.Addr != "" {
		cfg.Addr = o.Addr
	}
	if o.DiagAddr != "" {
		cfg.DiagAddr = o.DiagAddr
	}
	if o.Store != "" {
		cfg.Store = o.Store
	}
	if o.MongoURI != "" {
		cfg.MongoURI = o.MongoURI
	}
	if o.StoreTimeout > 0 {
		cfg.StoreTimeout = o.StoreTimeout
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := applog.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Infow("starting", "store", cfg.Store, "addr", cfg.Addr, "diag_addr", cfg.DiagAddr)
	app, err := server.New(ctx, cfg, sugar)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}

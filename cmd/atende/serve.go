package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/atendebot/atende"
	httpAdapter "github.com/atendebot/atende/internal/adapters/http"
	"github.com/atendebot/atende/internal/cli"
	"github.com/atendebot/atende/internal/metrics"
	"github.com/atendebot/atende/internal/orders"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the assistant in server mode, exposing the bot and the order API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		debug, _ := cmd.Flags().GetBool("debug")

		logger := cli.NewLogger(cfg.Log, debug)
		m := metrics.New(prometheus.DefaultRegisterer)

		app, err := cli.BuildApp(cmd.Context(), cfg, logger, m)
		if err != nil {
			fmt.Printf("Error initializing atende: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		handler := httpAdapter.NewHandler(app.Bot,
			map[string]http.Handler{"/api": orders.NewHandler(app.Orders, logger)},
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(m),
			httpAdapter.WithVersion(atende.Version),
		)

		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("server listening", "addr", srv.Addr, "store", cfg.Store.Kind)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("server close failed", "err", err)
				}
			}
			logger.Info("server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides config)")
}

package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	log "mit.edu/dsg/qep/logging"
	"mit.edu/dsg/qep/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explain and compare HTTP API",
	Long: `Connect to the configured database and serve:

  POST /api/single   {"query": "..."} or {"plan": <EXPLAIN JSON>}
  POST /api/compare  {"query1": "...", "query2": "..."} or {"plan1": ..., "plan2": ...}
  GET  /api/operators
  GET  /api/stats
  GET  /healthz

The server stops on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		q, closeFn, err := newQEP(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		srv := server.New(q, server.Config{
			Addr:               addr,
			CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
			ShutdownTimeout:    time.Duration(cfg.Server.ShutdownTimeout),
		})
		if err := srv.ListenAndServe(ctx); err != nil {
			return err
		}
		log.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}


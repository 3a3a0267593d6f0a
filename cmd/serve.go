package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/salesmix/internal/api"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve read-only analytics over HTTP",
	Long: `Loads the sales data once and serves JSON analytics over a snapshot:

  GET /health /summary /matrix /top /opportunities /trends /locations
  GET /similar /outreach /taxonomy

The filter parameters business_category, sub_category, product_category,
from and to apply to /summary, /matrix, /top, /opportunities, /trends and
/locations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ws, err := loadWorkspace(ctx, cmd)
		if err != nil {
			return err
		}
		tax, err := loadTaxonomy(cmd)
		if err != nil {
			return err
		}
		snap := ws.Session.Snapshot()

		srvAPI := api.NewServer(snap, tax, api.Defaults{
			TopN:            cfg.Analytics.TopN,
			Metric:          cfg.Analytics.Metric,
			Period:          cfg.Analytics.Period,
			RadiusMiles:     cfg.Location.RadiusMiles,
			Recommendations: cfg.Location.Recommendations,
			TopLocations:    cfg.Location.TopLocations,
			MaxResults:      cfg.Outreach.MaxResults,
			SimilarProducts: cfg.Outreach.SimilarProducts,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           srvAPI.Router(cfg.Server.AllowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("session_id", snap.SessionID),
			zap.Int("records", len(snap.Records)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

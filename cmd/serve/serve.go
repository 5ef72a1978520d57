// Package serve runs the HTTP API for statement uploads and exports
package serve

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"spendsense/statement-csv/cmd/root"
	"spendsense/statement-csv/internal/config"
	"spendsense/statement-csv/internal/server"
)

const fileMaxAge = 24 * time.Hour

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run an HTTP server exposing statement upload, processing and
export endpoints.`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	cfg := config.GetGlobalConfig()
	listenAddr := cfg.Server.Addr
	if addr != "" {
		listenAddr = addr
	}

	srv, err := server.New(logger, cfg.Server.UploadDir, cfg.Server.ExportDir)
	if err != nil {
		logger.Fatalf("Error initializing server: %v", err)
	}
	srv.CleanupOldFiles(fileMaxAge)

	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Infof("Listening on %s", listenAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server stopped: %v", err)
	}
}

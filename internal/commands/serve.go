package commands

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/balkashynov/horas/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tracker over HTTP",
	Long: `Serve the JSON API under /api. Every request must carry the owner id in
the configured header (http.owner_header, default X-Owner-ID), set by the
identity proxy in front of horas.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if a.cfg.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		router := api.Router{
			Tracker:     a.tracker,
			Logger:      a.log,
			OwnerHeader: a.cfg.HTTP.OwnerHeader,
			Health:      a.store,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// the server closes the store after draining
		server := api.NewServer(a.cfg.HTTP.Addr, router.SetUpRouter(), a.log, a.store)
		return server.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address, e.g. 127.0.0.1:8080")
}

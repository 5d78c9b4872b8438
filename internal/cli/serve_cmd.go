package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/proyek/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.HTTPAddr
			}
			logger := app.Logger
			if logger == nil {
				logger = slog.Default()
			}

			srv := httpapi.NewServer(httpapi.Services{
				Projects:  app.Projects,
				Ledger:    app.Ledger,
				Status:    app.Status,
				Reports:   app.Reports,
				Snapshots: app.Snapshots,
			}, logger, app.now)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmd.Printf("Listening on %s\n", addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from PROYEK_HTTP_ADDR)")

	return cmd
}

package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javajack/xlnest/internal/server"
	"github.com/javajack/xlnest/logging"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve normalize, validate and describe over HTTP",
		Long: `Serve starts an HTTP service:

  GET  /healthz
  POST /v1/normalize   body: document; query: format, sheet, table, select, origin, nfc
  POST /v1/validate
  POST /v1/describe

The address comes from --addr, then XLNEST_LISTEN_ADDR, then listen_addr in the
config file, then :8080.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !o.debug {
				logging.SetLogger(logging.NewTextLogger(cmd.ErrOrStderr(), slog.LevelInfo))
			}

			listen := addr
			if listen == "" {
				listen = o.cfg.Addr(envGet)
			}

			srv := server.New(server.Config{
				Addr:         listen,
				MaxBodyBytes: o.cfg.BodyLimit(),
				Options:      o.engineOptions(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :8080)")
	return cmd
}

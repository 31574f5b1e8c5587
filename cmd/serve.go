package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Spoje-NET/abo-parser/internal/api"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	var archive bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the decoder over HTTP:

  GET  /api/health
  POST /api/parse              multipart field "file" or the raw body
  GET  /api/documents          archived documents (with --archive)
  GET  /api/documents/:id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			h := &api.Handler{
				Parser:        a.parserConfig(),
				Log:           a.log,
				Version:       Version,
				IncludeHeader: a.cfg.Output.IncludeHeader,
			}

			if archive {
				s, err := a.openStore()
				if err != nil {
					return err
				}
				defer s.Close()
				h.Store = s
			}

			return serve(cmd.Context(), a, h, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&archive, "archive", false, "enable archiving and the /api/documents endpoints")

	return cmd
}

func serve(ctx context.Context, a *app, h *api.Handler, addr string) error {
	server := api.NewApp(h, a.cfg.Server.BodyLimitMB)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(addr)
	}()

	pterm.Info.Printf("Listening on %s\n", addr)
	a.log.WithField("addr", addr).Info("server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.log.Info("shutting down")
		if err := server.Shutdown(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/retention"
	"github.com/Zuo-Peng/chat-analyzer/internal/server"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serves the upload and session API:
  POST /api/chat/upload     multipart field "file"
  GET  /api/sessions        recent sessions (?limit=N)
  GET  /api/sessions/{id}   session metadata and metrics
  GET  /metrics             Prometheus metrics
  GET  /healthz

With retention_days set, sessions older than that are pruned on
prune_schedule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if addr == "" {
				addr = cfg.ListenAddr
			}

			if cfg.RetentionDays > 0 {
				sched, err := retention.Start(retention.NewJob(st, cfg.RetentionDays), cfg.PruneSchedule)
				if err != nil {
					return err
				}
				defer func() {
					if err := sched.Stop(); err != nil {
						log.Warn().Err(err).Msg("stop retention")
					}
				}()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(st, cfg.Parser(), server.Options{
				MaxUploadBytes: cfg.MaxUploadBytes,
				RecentLimit:    cfg.RecentLimit,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default listen_addr)")

	return cmd
}

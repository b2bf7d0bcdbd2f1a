package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/retention"
)

func pruneCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete sessions older than a number of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if !cmd.Flags().Changed("older-than") {
				days = cfg.RetentionDays
			}
			if days <= 0 {
				return fmt.Errorf("nothing to prune: pass --older-than or set retention_days")
			}

			job := retention.NewJob(st, days)
			n, err := job.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Pruned %d sessions created before %s\n", n, job.Cutoff().Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "older-than", 0, "Age in days (default retention_days)")

	return cmd
}

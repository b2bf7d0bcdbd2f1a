package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/tui"
)

func sessionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Browse stored sessions, newest first",
		Long: `Opens a TUI listing recent sessions with their metrics report. Typing
searches messages across all sessions. Output is TSV when stdout is not a
terminal:
  id, createdAt, filename, totalMessages, participants`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if !cmd.Flags().Changed("limit") {
				limit = cfg.RecentLimit
			}

			if stdoutIsTerminal() {
				return tui.RunSessions(st, limit)
			}

			sessions, err := st.RecentSessions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, s := range sessions {
				fmt.Printf("%d\t%s\t%s\t%d\t%d\n",
					s.ID,
					s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					strings.ReplaceAll(s.Filename, "\t", " "),
					s.TotalMessages,
					s.Participants,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max sessions (default recent_limit)")

	return cmd
}

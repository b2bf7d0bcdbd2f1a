package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/store"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, DB, FTS5, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			if p := os.Getenv("CHA_CONFIG"); p != "" {
				fmt.Printf("  CHA_CONFIG: %s\n", p)
			}
			fmt.Printf("  Listen:     %s\n", cfg.ListenAddr)
			fmt.Printf("  Date order: %s\n", cfg.DateOrder)
			if cfg.RetentionDays > 0 {
				fmt.Printf("  Retention:  %d days (%s)\n", cfg.RetentionDays, cfg.PruneSchedule)
			} else {
				fmt.Println("  Retention:  off")
			}

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'cha analyze' first)")
				return nil
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer st.Close()

			if err := reportCounts(cmd.Context(), st); err != nil {
				return err
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}
			return nil
		},
	}
}

func reportCounts(ctx context.Context, st *store.Store) error {
	sessionCount, err := st.SessionCount(ctx)
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}
	messageCount, err := st.MessageCount(ctx)
	if err != nil {
		return fmt.Errorf("count messages: %w", err)
	}
	fmt.Printf("  Sessions: %d\n", sessionCount)
	fmt.Printf("  Messages: %d\n", messageCount)

	fmt.Println("\n=== FTS5 ===")
	ftsCount, err := st.FTSCount(ctx)
	if err != nil {
		fmt.Printf("  FTS5 error: %v\n", err)
		return nil
	}
	fmt.Printf("  FTS5 entries: %d\n", ftsCount)
	if err := st.CheckFTS(ctx); err != nil {
		fmt.Printf("  Status: MISMATCH (%v)\n", err)
	} else {
		fmt.Println("  Status: OK (synced)")
	}
	return nil
}

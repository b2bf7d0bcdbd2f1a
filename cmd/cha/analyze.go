package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/ingest"
	"github.com/Zuo-Peng/chat-analyzer/internal/metrics"
	"github.com/Zuo-Peng/chat-analyzer/internal/render"
	"github.com/Zuo-Peng/chat-analyzer/internal/scan"
)

type analysisOutput struct {
	File      string                  `json:"file"`
	SessionID int64                   `json:"sessionId,omitempty"`
	Metrics   metrics.AnalysisMetrics `json:"metrics"`
}

func analyzeCmd() *cobra.Command {
	var asJSON, noSave bool

	cmd := &cobra.Command{
		Use:   "analyze <path>...",
		Short: "Analyze chat exports and store the results",
		Long: `Parses each export, computes its metrics and stores them as a session.
Directories are searched for *.txt exports. With --json one JSON object per
file is written to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := scan.ScanPaths(args...)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no chat exports found in %v", args)
			}

			var outputs []analysisOutput
			if noSave {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				p := cfg.Parser()
				for _, fi := range files {
					content, err := os.ReadFile(fi.Path)
					if err != nil {
						return fmt.Errorf("read %s: %w", fi.Path, err)
					}
					outputs = append(outputs, analysisOutput{
						File:    fi.Path,
						Metrics: metrics.AnalyzeWith(p, string(content)),
					})
				}
			} else {
				cfg, st, err := openStore()
				if err != nil {
					return err
				}
				defer st.Close()

				stats, results, err := ingest.ImportAll(cmd.Context(), st, cfg.Parser(), files)
				if err != nil {
					return err
				}
				for _, r := range results {
					outputs = append(outputs, analysisOutput{
						File:      r.Path,
						SessionID: r.Session.ID,
						Metrics:   r.Session.Metrics,
					})
				}
				fmt.Fprintf(os.Stderr, "Import: %s\n", stats)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				for _, o := range outputs {
					if err := enc.Encode(o); err != nil {
						return err
					}
				}
				return nil
			}

			color := stdoutIsTerminal()
			for i, o := range outputs {
				if i > 0 {
					fmt.Println()
				}
				title := filepath.Base(o.File)
				if o.SessionID != 0 {
					title = fmt.Sprintf("%s  (session %d)", title, o.SessionID)
				}
				fmt.Print(render.Report(o.Metrics, render.Options{
					Title: title,
					Width: stdoutWidth(),
					Color: color,
				}))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write metrics as JSON lines")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Analyze without storing a session")

	return cmd
}

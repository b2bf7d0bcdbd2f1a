package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/metrics"
	"github.com/Zuo-Peng/chat-analyzer/internal/render"
)

type showOutput struct {
	Session struct {
		ID        int64     `json:"id"`
		Filename  string    `json:"filename"`
		CreatedAt time.Time `json:"createdAt"`
	} `json:"session"`
	Metrics metrics.AnalysisMetrics `json:"metrics"`
}

func showCmd() *cobra.Command {
	var asJSON, messages bool
	var query string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored session's metrics or transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id %q", args[0])
			}

			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			sess, err := st.GetSession(cmd.Context(), id)
			if err != nil {
				return err
			}
			if sess == nil {
				return fmt.Errorf("session not found: %d", id)
			}

			if asJSON {
				var out showOutput
				out.Session.ID = sess.ID
				out.Session.Filename = sess.Filename
				out.Session.CreatedAt = sess.CreatedAt
				out.Metrics = sess.Metrics
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if messages {
				msgs, err := st.Messages(cmd.Context(), id)
				if err != nil {
					return err
				}
				text, _ := render.Transcript(msgs, render.TranscriptOptions{
					Width: stdoutWidth(),
					Color: stdoutIsTerminal(),
					Query: query,
				})
				fmt.Print(text)
				return nil
			}

			fmt.Print(render.Report(sess.Metrics, render.Options{
				Title: fmt.Sprintf("%s  (session %d, %s)", sess.Filename, sess.ID, sess.CreatedAt.Local().Format("2006-01-02 15:04")),
				Width: stdoutWidth(),
				Color: stdoutIsTerminal(),
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print {session, metrics} as JSON")
	cmd.Flags().BoolVar(&messages, "messages", false, "Print the stored transcript instead of metrics")
	cmd.Flags().StringVar(&query, "query", "", "Highlight these terms in --messages output")

	return cmd
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/search"
	"github.com/Zuo-Peng/chat-analyzer/internal/tui"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorGreen   = "\033[1;32m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd() *cobra.Command {
	var sender string
	var sessionID int64
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across stored messages",
		Long: `Search stored messages using FTS5 (substring match for CJK queries).
Output is TSV for fzf integration when stdout is not a terminal:
  sessionId, seq, datetime, sender, filename, snippet

Example:
  cha search pizza | fzf --ansi --delimiter='\t' --with-nth=3.. \
    --preview 'cha show {1} --messages'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			opts := search.Options{
				SessionID: sessionID,
				Sender:    sender,
				Limit:     limit,
			}

			// Interactive TUI when stdout is a terminal; TSV output for pipes
			if stdoutIsTerminal() {
				return tui.RunSearch(st, args[0], opts)
			}

			opts.Query = args[0]
			results, err := search.Search(cmd.Context(), st, opts)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			clean := strings.NewReplacer("\t", " ", "\n", " ")
			for _, r := range results {
				// first two fields stay plain for fzf {1} {2}
				fmt.Printf("%d\t%d\t%s%s %s%s\t%s%s%s\t%s\t%s\n",
					r.SessionID,
					r.Seq,
					sColorDim, r.Date, r.Time, sColorReset,
					sColorGreen, clean.Replace(r.Sender), sColorReset,
					clean.Replace(r.Filename),
					colorizeSnippet(clean.Replace(r.Snippet)),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Only messages from this sender")
	cmd.Flags().Int64Var(&sessionID, "session", 0, "Only messages in this session")
	cmd.Flags().IntVar(&limit, "limit", 50, "Max results")

	return cmd
}

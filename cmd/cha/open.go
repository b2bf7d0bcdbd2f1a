package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/open"
	"github.com/Zuo-Peng/chat-analyzer/internal/render"
)

func openCmd() *cobra.Command {
	var seq int

	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a stored transcript in $EDITOR at a message",
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

			msgs, err := st.Messages(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				return fmt.Errorf("no stored messages for session %d", id)
			}

			text, line := render.Transcript(msgs, render.TranscriptOptions{Focus: seq})
			return open.Text(fmt.Sprintf("cha-%d-*.txt", id), text, line+1)
		},
	}

	cmd.Flags().IntVar(&seq, "seq", 0, "Message to jump to (seq from search output)")

	return cmd
}

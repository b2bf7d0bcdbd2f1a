package render

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
)

// TranscriptOptions controls Transcript output.
type TranscriptOptions struct {
	Width int
	Color bool
	Query string // terms to highlight when Color is set
	Focus int    // message index whose first output line is reported
}

// Transcript renders stored messages one block per message: a sender line
// with the timestamp, then the indented text. It also returns the 0-based
// output line where message opts.Focus starts.
func Transcript(msgs []parse.Message, opts TranscriptOptions) (string, int) {
	if len(msgs) == 0 {
		return "(empty session)\n", 0
	}

	p := painter(opts.Color)
	w := &lineWriter{width: opts.Width}

	focusLine := 0
	for i, m := range msgs {
		if i == opts.Focus {
			focusLine = w.lines
		}
		tag := ""
		switch m.Kind() {
		case parse.KindDeleted:
			tag = " [deleted]"
		case parse.KindMedia:
			tag = " [media]"
		}
		w.line(fmt.Sprintf("%s %s%s", p.paint(colorSender, m.Sender), p.paint(colorDim, m.DateTime), tag))

		text := m.Text
		if opts.Color {
			text = highlightKeywords(text, opts.Query)
		}
		for _, l := range strings.Split(indentLines(text, "  "), "\n") {
			w.line(l)
		}
	}
	return w.b.String(), focusLine
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/chat-analyzer/internal/render"
	"github.com/Zuo-Peng/chat-analyzer/internal/store"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	key     string
	content string
	hitLine int
	err     error
}

// loadPreviewCmd renders the preview off the update loop: the metrics report
// for a session entry, the highlighted transcript for a message hit.
func loadPreviewCmd(st *store.Store, it item, query string, width int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := previewContext()
		defer cancel()

		msg := previewRenderedMsg{key: it.previewKey()}

		if !it.hit {
			sess, err := st.GetSession(ctx, it.sessionID)
			switch {
			case err != nil:
				msg.err = err
			case sess == nil:
				msg.err = fmt.Errorf("session %d not found", it.sessionID)
			default:
				msg.content = render.Report(sess.Metrics, render.Options{
					Title: sess.Filename,
					Width: width,
					Color: true,
				})
			}
			return msg
		}

		msgs, err := st.Messages(ctx, it.sessionID)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.content, msg.hitLine = render.Transcript(msgs, render.TranscriptOptions{
			Width: width,
			Color: true,
			Query: query,
			Focus: it.seq,
		})
		return msg
	}
}

// newViewport sizes the preview; the border comes from the enclosing panel.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.MouseWheelDelta = 3
	return vp
}

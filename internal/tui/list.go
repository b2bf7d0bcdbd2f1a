package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chat-analyzer/internal/search"
	"github.com/Zuo-Peng/chat-analyzer/internal/store"
)

// linesPerItem is the number of terminal lines each entry occupies.
const linesPerItem = 2

// item is one list entry: a whole session, or a message hit inside one.
type item struct {
	sessionID int64
	seq       int  // message index for hits
	hit       bool // false for session entries
	title     string
	sender    string
	detail    string
}

func sessionItem(s store.SessionSummary) item {
	return item{
		sessionID: s.ID,
		title:     s.Filename,
		detail: fmt.Sprintf("%s · %d messages · %d participants",
			s.CreatedAt.Local().Format("2006-01-02 15:04"), s.TotalMessages, s.Participants),
	}
}

func hitItem(r search.Result) item {
	return item{
		sessionID: r.SessionID,
		seq:       r.Seq,
		hit:       true,
		title:     r.Filename,
		sender:    r.Sender,
		detail:    r.Snippet,
	}
}

// previewKey identifies what the preview pane shows for an item.
func (it item) previewKey() string {
	if !it.hit {
		return fmt.Sprintf("%d", it.sessionID)
	}
	return fmt.Sprintf("%d:%d", it.sessionID, it.seq)
}

// renderList renders the left panel: entries with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.items) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No results")
		return empty
	}

	var lines []string
	for i, it := range m.items {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatItem(it, width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatItem formats an entry as two lines:
//
//	line 1: [>] #id  filename  [sender]
//	line 2:    detail (dimmed)
func formatItem(it item, width int, selected bool) []string {
	id := styleSessionID.Render(fmt.Sprintf("#%d", it.sessionID))
	avail := max(width-2-lipgloss.Width(id)-1, 0)
	head := runewidth.Truncate(it.title, avail, "")
	if it.sender != "" {
		if rest := avail - runewidth.StringWidth(head) - 2; rest > 0 {
			head += "  " + styleSender.Render(runewidth.Truncate(it.sender, rest, ""))
		}
	}

	line1 := id + " " + head
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	detail := strings.NewReplacer("\n", " ", "\t", " ", ">>>", "", "<<<", "").Replace(it.detail)
	detail = runewidth.Truncate(detail, max(width-4, 0), "")
	line2 := "    " + styleDetail.Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := max(listHeight/linesPerItem, 1)
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/chat-analyzer/internal/search"
	"github.com/Zuo-Peng/chat-analyzer/internal/store"
)

const (
	debounceDelay  = 200 * time.Millisecond
	previewTimeout = 5 * time.Second
)

type tuiMode int

const (
	modeSearch tuiMode = iota
	modeSessions
)

// message types

type itemsMsg struct {
	query string
	items []item
	err   error
}

type debounceTickMsg struct {
	query string
}

// model

type model struct {
	st          *store.Store
	limit       int
	searchOpts  search.Options
	mode        tuiMode
	query       string
	items       []item
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // avoids duplicate renders
	width       int
	height      int
	ready       bool
	quitting    bool
	chosen      *item
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.SetValue(value)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256
	return ti
}

// RunSessions browses the most recent sessions. Typing switches the list to
// message search across all sessions; clearing the input goes back.
func RunSessions(st *store.Store, limit int) error {
	return run(model{
		st:          st,
		limit:       limit,
		mode:        modeSessions,
		filterInput: newInput("Filter...", ""),
		preview:     viewport.New(0, 0),
	})
}

// RunSearch starts with the results for query and searches as the user types.
func RunSearch(st *store.Store, query string, opts search.Options) error {
	return run(model{
		st:          st,
		searchOpts:  opts,
		mode:        modeSearch,
		query:       query,
		filterInput: newInput("Search...", query),
		preview:     viewport.New(0, 0),
	})
}

// run blocks until the TUI exits. If the user picks an entry, the command to
// show its session is copied to the clipboard.
func run(m model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.chosen != nil {
		copyShowCmd(fm.chosen.sessionID)
	}
	return nil
}

func showCmd(id int64) string {
	return fmt.Sprintf("cha show %d", id)
}

// copyShowCmd falls back to printing when no clipboard is available.
func copyShowCmd(id int64) {
	cmd := showCmd(id)
	if err := clipboard.WriteAll(cmd); err != nil {
		fmt.Printf("%s\n", cmd)
		return
	}
	fmt.Printf("Copied to clipboard: %s\n", cmd)
}

func previewContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), previewTimeout)
}

// Init triggers the initial load.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load(m.query))
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		// the old render no longer fits
		m.previewKey = ""
		return m, m.loadCurrentPreview()

	case tea.KeyMsg:
		return m.onKey(msg)

	case tea.MouseMsg:
		return m.onMouse(msg)

	case debounceTickMsg:
		// stale ticks are dropped
		if msg.query != m.query {
			return m, nil
		}
		return m, m.load(msg.query)

	case itemsMsg:
		return m.onItems(msg)

	case previewRenderedMsg:
		return m.onPreview(msg), nil
	}
	return m, nil
}

// moveCursor selects the entry at idx and refreshes the preview.
func (m model) moveCursor(idx int) (model, tea.Cmd) {
	if idx < 0 || idx >= len(m.items) || idx == m.cursor {
		return m, nil
	}
	m.cursor = idx
	m.adjustListScroll(m.panelHeight())
	return m, m.loadCurrentPreview()
}

func (m model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	half := m.panelHeight() / 2

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Pick):
		it, ok := m.current()
		if !ok {
			return m, nil
		}
		m.chosen = &it
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		return m.moveCursor(m.cursor - 1)
	case key.Matches(msg, keys.Down):
		return m.moveCursor(m.cursor + 1)
	case key.Matches(msg, keys.HalfUp):
		m.preview.LineUp(half)
		return m, nil
	case key.Matches(msg, keys.HalfDown):
		m.preview.LineDown(half)
		return m, nil
	case key.Matches(msg, keys.PageUp):
		m.preview.LineUp(m.panelHeight())
		return m, nil
	case key.Matches(msg, keys.PageDown):
		m.preview.LineDown(m.panelHeight())
		return m, nil
	case key.Matches(msg, keys.TopOfText):
		m.preview.GotoTop()
		return m, nil
	case key.Matches(msg, keys.EndOfText):
		m.preview.GotoBottom()
		return m, nil
	}

	var inputCmd tea.Cmd
	m.filterInput, inputCmd = m.filterInput.Update(msg)
	q := m.filterInput.Value()
	if q == m.query {
		return m, inputCmd
	}
	m.query = q
	return m, tea.Batch(inputCmd, scheduleDebounced(q))
}

func (m model) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready || len(m.items) == 0 {
		return m, nil
	}

	region, idx := m.hitTest(msg.X, msg.Y)
	wheel := msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown

	switch region {
	case regionList:
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.listOffset = max(m.listOffset-1, 0)
		case msg.Button == tea.MouseButtonWheelDown:
			last := max(len(m.items)-m.panelHeight()/linesPerItem, 0)
			m.listOffset = min(m.listOffset+1, last)
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			return m.moveCursor(idx)
		}
	case regionPreview:
		if wheel {
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			return m, vpCmd
		}
	}
	return m, nil
}

// onItems swaps in a finished load unless the query moved on meanwhile.
func (m model) onItems(msg itemsMsg) (tea.Model, tea.Cmd) {
	if msg.query != m.query {
		return m, nil
	}
	m.cursor, m.listOffset = 0, 0
	m.previewKey = ""
	m.items = msg.items

	switch {
	case msg.err != nil:
		m.items = nil
		m.preview.SetContent("Error: " + msg.err.Error())
		return m, nil
	case len(m.items) == 0:
		m.preview.SetContent("")
		return m, nil
	}
	return m, m.loadCurrentPreview()
}

func (m model) onPreview(msg previewRenderedMsg) model {
	if msg.key == m.previewKey {
		return m
	}
	if it, ok := m.current(); ok && it.previewKey() != msg.key {
		return m
	}

	m.previewKey = msg.key
	if msg.err != nil {
		m.preview.SetContent("Preview error: " + msg.err.Error())
		return m
	}
	m.preview.SetContent(msg.content)
	if msg.hitLine > 0 {
		m.preview.SetYOffset(msg.hitLine)
	} else {
		m.preview.GotoTop()
	}
	return m
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)
	return lipgloss.JoinVertical(lipgloss.Left, m.filterInput.View(), panels, m.statusBar())
}

// helper methods

func (m model) current() (item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return item{}, false
	}
	return m.items[m.cursor], true
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 40% for list, minus border padding
	return max(m.width*40/100-4, 20)
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(m.width*60/100-4, 20)
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// input row (1) + status bar (1) + borders (4)
	return max(m.height-6, 5)
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + m.panelHeight() - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		return regionList, m.listOffset + relY/linesPerItem
	}
	if x > listBoxRight+1 {
		return regionPreview, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	noun := "results"
	if m.mode == modeSessions && m.query == "" {
		noun = "sessions"
	}
	parts := []string{fmt.Sprintf("%d %s", len(m.items), noun)}
	for _, b := range keys.hints() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

// load fetches the entries for query: recent sessions for an empty query in
// session mode, message hits otherwise.
func (m model) load(query string) tea.Cmd {
	st := m.st
	mode := m.mode
	limit := m.limit
	opts := m.searchOpts
	opts.Query = query
	return func() tea.Msg {
		ctx, cancel := previewContext()
		defer cancel()

		if strings.TrimSpace(query) == "" {
			if mode != modeSessions {
				return itemsMsg{query: query}
			}
			sessions, err := st.RecentSessions(ctx, limit)
			if err != nil {
				return itemsMsg{query: query, err: err}
			}
			items := make([]item, 0, len(sessions))
			for _, s := range sessions {
				items = append(items, sessionItem(s))
			}
			return itemsMsg{query: query, items: items}
		}

		results, err := search.Search(ctx, st, opts)
		if err != nil {
			return itemsMsg{query: query, err: err}
		}
		items := make([]item, 0, len(results))
		for _, r := range results {
			items = append(items, hitItem(r))
		}
		return itemsMsg{query: query, items: items}
	}
}

func scheduleDebounced(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	it, ok := m.current()
	if !ok || it.previewKey() == m.previewKey {
		return nil
	}
	return loadPreviewCmd(m.st, it, m.query, m.previewWidth())
}

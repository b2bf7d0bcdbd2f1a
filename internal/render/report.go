// Package render formats analysis results for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chat-analyzer/internal/metrics"
)

type Options struct {
	Title string
	Width int  // wrap width (0 = no wrap)
	Color bool // emit ANSI colors
}

const (
	maxBarWidth = 40
	nameWidth   = 16
	listLimit   = 10
)

var weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Report renders a metrics summary: totals, busiest periods, per-sender
// leaderboard, hourly chart and the top words and emojis.
func Report(m metrics.AnalysisMetrics, opts Options) string {
	p := painter(opts.Color)
	w := &lineWriter{width: opts.Width}

	if opts.Title != "" {
		w.line(p.paint(colorTitle, opts.Title))
	}
	w.line(fmt.Sprintf("%d messages · %d words · %d media · %d deleted · %d participants",
		m.TotalMessages, m.TotalWords, m.TotalMedia, m.TotalDeleted, len(m.Participants)))

	if m.TotalMessages == 0 {
		w.line(p.paint(colorDim, "(no messages)"))
		return w.b.String()
	}

	if m.BusiestDay.Count > 0 {
		w.line(fmt.Sprintf("%s %s (%d)", p.paint(colorDim, "busiest day  "), m.BusiestDay.Date, m.BusiestDay.Count))
	}
	if m.BusiestMonth.Count > 0 {
		w.line(fmt.Sprintf("%s %s (%d)", p.paint(colorDim, "busiest month"), m.BusiestMonth.Month, m.BusiestMonth.Count))
	}
	if m.BusiestHour.Count > 0 {
		w.line(fmt.Sprintf("%s %02d:00 (%d)", p.paint(colorDim, "busiest hour "), m.BusiestHour.Hour, m.BusiestHour.Count))
	}

	section(w, p, "Leaderboard")
	for _, u := range m.UserStats {
		var emojis []string
		for _, e := range u.TopEmojis {
			emojis = append(emojis, e.Emoji)
		}
		w.line(fmt.Sprintf("  %s %6d msgs %7d words %5.1f avg  %s",
			p.paint(colorSender, padRight(u.Sender, nameWidth)),
			u.MessageCount, u.WordCount, u.AverageMessageLength, strings.Join(emojis, "")))
	}

	if len(m.HourlyActivity) > 0 {
		section(w, p, "Hourly activity")
		hourBars(w, p, m.HourlyActivity, opts.Width)
	}

	if len(m.ActivityByDay) > 0 {
		section(w, p, "By weekday")
		byDay := make(map[string]int, len(m.ActivityByDay))
		for _, d := range m.ActivityByDay {
			byDay[d.DayOfWeek] = d.Count
		}
		for _, d := range weekdays {
			w.line(fmt.Sprintf("  %s %d", padRight(d, 10), byDay[d]))
		}
	}

	if len(m.TopWords) > 0 {
		section(w, p, "Top words")
		var parts []string
		for _, wc := range m.TopWords[:min(len(m.TopWords), listLimit)] {
			parts = append(parts, fmt.Sprintf("%s %d", wc.Word, wc.Count))
		}
		w.line("  " + strings.Join(parts, ", "))
	}

	if len(m.TopEmojis) > 0 {
		section(w, p, "Top emojis")
		var parts []string
		for _, e := range m.TopEmojis[:min(len(m.TopEmojis), listLimit)] {
			parts = append(parts, fmt.Sprintf("%s %d", e.Emoji, e.Count))
		}
		w.line("  " + strings.Join(parts, "  "))
	}

	return w.b.String()
}

func section(w *lineWriter, p painter, title string) {
	w.line("")
	w.line(p.paint(colorTitle, title))
}

// hourBars draws one row per hour of the day, scaled to the busiest hour.
func hourBars(w *lineWriter, p painter, hours []metrics.HourActivity, width int) {
	var counts [24]int
	peak := 0
	for _, h := range hours {
		if h.Hour < 0 || h.Hour > 23 {
			continue
		}
		counts[h.Hour] = h.Count
		peak = max(peak, h.Count)
	}

	barW := maxBarWidth
	if width > 0 {
		// "  HH " prefix and " count" suffix
		barW = max(min(barW, width-5-runewidth.StringWidth(fmt.Sprint(peak))-1), 1)
	}

	for h, n := range counts {
		bar := ""
		if peak > 0 && n > 0 {
			bar = strings.Repeat("█", max(n*barW/peak, 1))
		}
		w.line(fmt.Sprintf("  %02d %s %d", h, p.paint(colorBar, bar), n))
	}
}

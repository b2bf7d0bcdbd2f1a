package render

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const (
	colorReset   = "\033[0m"
	colorTitle   = "\033[1;34m" // bold blue
	colorSender  = "\033[1;32m" // bold green
	colorDim     = "\033[2m"
	colorBar     = "\033[36m"   // cyan
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

// painter applies ANSI colors only when enabled.
type painter bool

func (p painter) paint(color, s string) string {
	if !p || s == "" {
		return s
	}
	return color + s + colorReset
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red
// ANSI codes. All terms are matched in a single pass over the original text.
func highlightKeywords(text, query string) string {
	re := keywordPattern(query)
	if re == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return colorBoldRed + m + colorReset
	})
}

// keywordPattern compiles the query terms into one alternation, longest
// first so a term never shadows a longer one sharing its prefix.
func keywordPattern(query string) *regexp.Regexp {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil
	}
	slices.SortStableFunc(terms, func(a, b string) int { return len(b) - len(a) })
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth && visW > 0 {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}
	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// lineWriter collects output lines, wrapping each at width.
type lineWriter struct {
	b     strings.Builder
	width int
	lines int
}

func (w *lineWriter) line(s string) {
	for _, wl := range wrapLine(s, w.width) {
		w.b.WriteString(wl)
		w.b.WriteByte('\n')
		w.lines++
	}
}

// padRight pads or truncates s to exactly n display columns.
func padRight(s string, n int) string {
	return runewidth.FillRight(runewidth.Truncate(s, n, "…"), n)
}

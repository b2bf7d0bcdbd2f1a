package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Zuo-Peng/chat-analyzer/internal/store"
)

type Result struct {
	SessionID int64   `db:"session_id" json:"sessionId"`
	Filename  string  `db:"filename" json:"filename"`
	Seq       int     `db:"seq" json:"seq"`
	Date      string  `db:"date" json:"date"`
	Time      string  `db:"time" json:"time"`
	Sender    string  `db:"sender" json:"sender"`
	Snippet   string  `db:"snip" json:"snippet"`
	Rank      float64 `db:"rank" json:"rank"`
}

type Options struct {
	Query     string
	SessionID int64  // 0 = all sessions
	Sender    string // "" = all senders
	Limit     int
}

const defaultLimit = 50

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	runes := []rune(text)

	var loc []int
	if query != "" {
		loc = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query)).FindStringIndex(text)
	}
	if loc == nil {
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}

	runePos := utf8.RuneCountInString(text[:loc[0]])
	matchEnd := utf8.RuneCountInString(text[:loc[1]])
	start := max(runePos-contextChars, 0)
	end := min(matchEnd+contextChars, len(runes))

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(string(runes[start:runePos]))
	b.WriteString(">>>" + string(runes[runePos:matchEnd]) + "<<<")
	b.WriteString(string(runes[matchEnd:end]))
	if end < len(runes) {
		b.WriteString("...")
	}
	return b.String()
}

// Search finds stored messages matching the query, best match first. CJK
// queries fall back to substring matching since unicode61 does not split
// ideographs into words.
func Search(ctx context.Context, st *store.Store, opts Options) ([]Result, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return []Result{}, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}

	if containsCJK(opts.Query) {
		return searchLike(ctx, st, opts)
	}
	return searchFTS(ctx, st, opts)
}

func filters(opts Options) ([]string, []any) {
	var conditions []string
	var args []any

	// session filter
	if opts.SessionID != 0 {
		conditions = append(conditions, "m.session_id = ?")
		args = append(args, opts.SessionID)
	}

	// sender filter
	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}

	return conditions, args
}

func searchFTS(ctx context.Context, st *store.Store, opts Options) ([]Result, error) {
	match := ftsQuery(opts.Query)
	if match == "" {
		return []Result{}, nil
	}

	conditions, args := filters(opts)
	conditions = append([]string{"messages_fts MATCH ?"}, conditions...)
	args = append([]any{match}, args...)

	query := fmt.Sprintf(`
		SELECT
			m.session_id,
			s.filename,
			m.seq,
			m.date,
			m.time,
			m.sender,
			snippet(messages_fts, 0, '>>>', '<<<', '...', 16) AS snip,
			bm25(messages_fts) AS rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		JOIN sessions s ON m.session_id = s.id
		WHERE %s
		ORDER BY rank, m.session_id DESC, m.seq
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	results := []Result{}
	if err := st.Raw().SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	return results, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func searchLike(ctx context.Context, st *store.Store, opts Options) ([]Result, error) {
	conditions, args := filters(opts)
	conditions = append([]string{`m.text LIKE ? ESCAPE '\'`}, conditions...)
	args = append([]any{"%" + likeEscaper.Replace(opts.Query) + "%"}, args...)

	query := fmt.Sprintf(`
		SELECT
			m.session_id,
			s.filename,
			m.seq,
			m.date,
			m.time,
			m.sender,
			m.text AS snip,
			0.0 AS rank
		FROM messages m
		JOIN sessions s ON m.session_id = s.id
		WHERE %s
		ORDER BY m.session_id DESC, m.seq
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	results := []Result{}
	if err := st.Raw().SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	for i := range results {
		results[i].Snippet = makeSnippet(results[i].Snippet, opts.Query, 30)
	}
	return results, nil
}

// ftsQuery quotes each term so punctuation in chat text (emoticons, urls)
// cannot be read as FTS5 query syntax. Terms without a letter or digit
// produce no tokens and are dropped. Remaining terms are ANDed.
func ftsQuery(q string) string {
	fields := strings.Fields(q)
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.IndexFunc(f, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) < 0 {
			continue
		}
		quoted = append(quoted, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}

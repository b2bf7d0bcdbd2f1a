package search

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chat-analyzer/internal/metrics"
	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/chat-analyzer/internal/store"
)

func seed(t *testing.T) (*store.Store, int64, int64) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "cha.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	add := func(name, content string) int64 {
		msgs := parse.Parse(content)
		sess, err := st.CreateSession(context.Background(), name, metrics.Aggregate(msgs), msgs)
		require.NoError(t, err)
		return sess.ID
	}

	first := add("trip.txt",
		"01/02/2023, 10:30 - Alice: the pizza place was great\n"+
			"01/02/2023, 10:31 - Bob: pizza again tomorrow?\n"+
			"01/02/2023, 10:32 - Bob: 我们明天去吃饭吧\n")
	second := add("work.txt",
		"05/03/2023, 09:00 - Carol: deploy the pizza tracker :)\n"+
			"05/03/2023, 09:05 - Dan: done\n")
	return st, first, second
}

func TestSearch_FTS(t *testing.T) {
	st, _, _ := seed(t)

	results, err := Search(context.Background(), st, Options{Query: "pizza"})
	require.NoError(t, err)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Contains(t, r.Snippet, ">>>pizza<<<")
	}
}

func TestSearch_Filters(t *testing.T) {
	st, first, second := seed(t)
	ctx := context.Background()

	results, err := Search(ctx, st, Options{Query: "pizza", SessionID: second})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Carol", results[0].Sender)
	assert.Equal(t, "work.txt", results[0].Filename)

	results, err = Search(ctx, st, Options{Query: "pizza", SessionID: first, Sender: "Bob"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Seq)
	assert.Equal(t, "2023-02-01", results[0].Date)
}

func TestSearch_Limit(t *testing.T) {
	st, _, _ := seed(t)

	results, err := Search(context.Background(), st, Options{Query: "pizza", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_PunctuationIsLiteral(t *testing.T) {
	st, _, _ := seed(t)

	results, err := Search(context.Background(), st, Options{Query: "tracker :)"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Carol", results[0].Sender)
}

func TestSearch_CJK(t *testing.T) {
	st, _, _ := seed(t)

	results, err := Search(context.Background(), st, Options{Query: "明天"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "我们>>>明天<<<去吃饭吧", results[0].Snippet)
}

func TestSearch_CJKWildcardsAreLiteral(t *testing.T) {
	st, _, _ := seed(t)
	msgs := parse.Parse("06/03/2023, 12:00 - Erin: 今天打50%折\n" +
		"06/03/2023, 12:01 - Finn: 明天打5折\n")
	_, err := st.CreateSession(context.Background(), "sale.txt", metrics.Aggregate(msgs), msgs)
	require.NoError(t, err)

	results, err := Search(context.Background(), st, Options{Query: "%折"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Erin", results[0].Sender)

	results, err = Search(context.Background(), st, Options{Query: "打_折"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_EmptyQuery(t *testing.T) {
	st, _, _ := seed(t)

	results, err := Search(context.Background(), st, Options{Query: "  "})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearch_OnlyPunctuation(t *testing.T) {
	st, _, _ := seed(t)

	results, err := Search(context.Background(), st, Options{Query: ":)"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_NoMatch(t *testing.T) {
	st, _, _ := seed(t)

	results, err := Search(context.Background(), st, Options{Query: "sushi"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestMakeSnippet(t *testing.T) {
	tests := []struct {
		name, text, query string
		ctx               int
		want              string
	}{
		{"middle", "abcdefghij", "ef", 2, "...cd>>>ef<<<gh..."},
		{"start", "hello world", "HELLO", 3, ">>>hello<<< wo..."},
		{"no match short", "short", "zzz", 5, "short"},
		{"no match long", "abcdefghij", "zzz", 2, "abcd..."},
		{"empty query", "abc", "", 5, "abc"},
		{"lowercase changes byte length", "İİİİİİİİ中文", "中", 30, "İİİİİİİİ>>>中<<<文"},
		{"metacharacters literal", "a.b axb", "x", 1, "...a>>>x<<<b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, makeSnippet(tt.text, tt.query, tt.ctx))
		})
	}
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, `"tracker"`, ftsQuery("tracker :)"))
	assert.Equal(t, `"say" """hi"""`, ftsQuery(`say "hi"`))
	assert.Empty(t, ftsQuery(":) :("))
}

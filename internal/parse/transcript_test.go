package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TwoMessages(t *testing.T) {
	msgs := Parse("01/02/2023, 10:30 - Alice: hello\n01/02/2023, 10:31 - Bob: hi there\n")

	require.Len(t, msgs, 2)
	assert.Equal(t, Message{
		Date:      "2023-02-01",
		Time:      "10:30",
		DateTime:  "2023-02-01 10:30",
		Sender:    "Alice",
		Text:      "hello",
		Sentiment: Neutral,
	}, msgs[0])
	assert.Equal(t, "Bob", msgs[1].Sender)
	assert.Equal(t, "hi there", msgs[1].Text)
}

func TestParse_PreservesOrder(t *testing.T) {
	content := "05/01/2024, 09:00 - C: third by date but first\n" +
		"01/01/2024, 09:00 - A: second\n" +
		"03/01/2024, 09:00 - B: last\n"

	msgs := Parse(content)

	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{msgs[0].Sender, msgs[1].Sender, msgs[2].Sender})
}

func TestParse_ContinuationLines(t *testing.T) {
	content := "01/02/2023, 10:30 - Alice: first line\n" +
		"second line is great\n" +
		"\n" +
		"   \n" +
		"third line\n" +
		"01/02/2023, 10:31 - Bob: next\n"

	msgs := Parse(content)

	require.Len(t, msgs, 2)
	assert.Equal(t, "first line\nsecond line is great\nthird line", msgs[0].Text)
	// sentiment reflects the joined text, not just the header line
	assert.Equal(t, Positive, msgs[0].Sentiment)
	assert.Equal(t, 1, msgs[0].SentimentScore)
}

func TestParse_ContinuationRecomputesClassification(t *testing.T) {
	content := "01/02/2023, 10:30 - Alice: look\n<Media omitted>\n"

	msgs := Parse(content)

	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsMedia)
	assert.False(t, msgs[0].IsDeleted)
}

func TestParse_FinalStateWins(t *testing.T) {
	content := "01/02/2023, 10:30 - Alice: great\nbad terrible\n"

	msgs := Parse(content)

	require.Len(t, msgs, 1)
	assert.Equal(t, Negative, msgs[0].Sentiment)
	assert.Equal(t, -1, msgs[0].SentimentScore)
}

func TestParse_DropsLeadingNoise(t *testing.T) {
	content := "Messages and calls are end-to-end encrypted.\n" +
		"\n" +
		"01/02/2023, 10:30 - Alice: hello\n"

	msgs := Parse(content)

	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Text)
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n  \n"))
}

func TestParse_CRLF(t *testing.T) {
	msgs := Parse("01/02/2023, 10:30 - Alice: hello\r\nmore\r\n")

	require.Len(t, msgs, 1)
	assert.Equal(t, "hello\nmore", msgs[0].Text)
}

func TestParse_HeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		date   string
		time   string
		sender string
		text   string
	}{
		{
			name: "dots and two digit year",
			line: "1.2.23, 9:05 - Ann Lee: hey",
			date: "2023-02-01", time: "9:05", sender: "Ann Lee", text: "hey",
		},
		{
			name: "dashes without comma",
			line: "31-12-2022 23:59 - Bob: bye",
			date: "2022-12-31", time: "23:59", sender: "Bob", text: "bye",
		},
		{
			name: "am pm marker",
			line: "12/3/2021, 7:15 PM - Carol: evening",
			date: "2021-03-12", time: "7:15 PM", sender: "Carol", text: "evening",
		},
		{
			name: "narrow no-break space before pm",
			line: "12/3/2021, 7:15\u202fpm - Dan: late",
			date: "2021-03-12", time: "7:15\u202fpm", sender: "Dan", text: "late",
		},
		{
			name: "colon in text",
			line: "01/02/2023, 10:30 - Eve: time is 10:45: ok",
			date: "2023-02-01", time: "10:30", sender: "Eve", text: "time is 10:45: ok",
		},
		{
			name: "emoji in sender",
			line: "01/02/2023, 10:30 - Bob 👍: great job 👍👍",
			date: "2023-02-01", time: "10:30", sender: "Bob 👍", text: "great job 👍👍",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := Parse(tt.line)
			require.Len(t, msgs, 1)
			assert.Equal(t, tt.date, msgs[0].Date)
			assert.Equal(t, tt.time, msgs[0].Time)
			assert.Equal(t, tt.sender, msgs[0].Sender)
			assert.Equal(t, tt.text, msgs[0].Text)
		})
	}
}

func TestParse_NotHeaders(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"mixed separators", "01/02-2023, 10:30 - Alice: hello"},
		{"system notice without sender", "01/02/2023, 10:30 - Alice joined using this group's invite link"},
		{"missing space after colon", "01/02/2023, 10:30 - Alice:hello"},
		{"missing dash", "01/02/2023, 10:30 Alice: hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Parse(tt.line))
		})
	}
}

func TestParse_NonHeaderBecomesContinuation(t *testing.T) {
	content := "01/02/2023, 10:30 - Alice: hello\n" +
		"01/02/2023, 10:31 - Bob left\n"

	msgs := Parse(content)

	require.Len(t, msgs, 1)
	assert.Equal(t, "hello\n01/02/2023, 10:31 - Bob left", msgs[0].Text)
}

func TestParser_DateOrder(t *testing.T) {
	line := "02/13/2023, 10:30 - Alice: hi"

	assert.Equal(t, "2023-13-02", Parse(line)[0].Date)
	assert.Equal(t, "2023-02-13", NewParser(Options{DateOrder: MonthFirst}).Parse(line)[0].Date)
	assert.Equal(t, "2023-02-13", NewParser(Options{DateOrder: Auto}).Parse(line)[0].Date)
}

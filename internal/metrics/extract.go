package metrics

import (
	"regexp"
	"strings"
)

var stopWords = map[string]bool{
	"the": true, "and": true, "to": true, "a": true, "of": true, "in": true,
	"i": true, "is": true, "that": true, "it": true, "on": true, "you": true,
	"this": true, "for": true, "but": true, "with": true, "are": true, "have": true,
	"be": true, "at": true, "or": true, "as": true, "was": true, "so": true,
	"if": true, "out": true, "not": true, "my": true, "your": true, "we": true,
	"they": true, "me": true, "am": true, "do": true, "can": true, "will": true,
	"just": true,
}

var wordRe = regexp.MustCompile(`\b[a-z]{3,}\b`)

// emojiRe covers the common emoji blocks plus a handful of symbols that
// render as emoji. Modifiers and joiners are not matched on their own.
var emojiRe = regexp.MustCompile(`[` +
	`\x{1f300}-\x{1f5ff}\x{1f900}-\x{1f9ff}\x{1f600}-\x{1f64f}\x{1f680}-\x{1f6ff}` +
	`\x{2600}-\x{26ff}\x{2700}-\x{27bf}\x{1f1e6}-\x{1f1ff}\x{1f191}-\x{1f251}` +
	`\x{1f004}\x{1f0cf}\x{1f170}-\x{1f171}\x{1f17e}-\x{1f17f}\x{1f18e}` +
	`\x{3030}\x{2b50}\x{2b55}\x{2934}-\x{2935}\x{2b05}-\x{2b07}\x{2b1b}-\x{2b1c}` +
	`\x{3297}\x{3299}\x{303d}\x{00a9}\x{00ae}\x{2122}\x{23f3}\x{24c2}` +
	`\x{23e9}-\x{23ef}\x{25b6}\x{23f8}-\x{23fa}` +
	`]`)

// extractWords returns lowercased alphabetic runs of three or more letters,
// minus stop words.
func extractWords(text string) []string {
	var words []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if !stopWords[w] {
			words = append(words, w)
		}
	}
	return words
}

func extractEmojis(text string) []string {
	return emojiRe.FindAllString(text, -1)
}

package parse

import (
	"regexp"
	"strings"
)

var deletedPatterns = []string{
	"This message was deleted",
	"You deleted this message",
}

var mediaPatterns = []string{
	"<Media omitted>",
	"image omitted",
	"video omitted",
	"audio omitted",
	"sticker omitted",
	"GIF omitted",
}

var positiveWords = map[string]bool{
	"good": true, "great": true, "awesome": true, "excellent": true, "happy": true,
	"love": true, "like": true, "best": true, "thanks": true, "thank": true,
	"haha": true, "lol": true, "lmao": true,
}

var negativeWords = map[string]bool{
	"bad": true, "terrible": true, "awful": true, "sad": true, "hate": true,
	"angry": true, "worst": true, "sorry": true, "no": true, "not": true, "never": true,
}

var tokenRe = regexp.MustCompile(`\w+`)

// Classification is everything derived from a message's text alone.
type Classification struct {
	IsDeleted      bool
	IsMedia        bool
	Sentiment      Sentiment
	SentimentScore int
}

// Classify checks deletion and media placeholders and scores sentiment.
func Classify(text string) Classification {
	sentiment, score := Score(text)
	return Classification{
		IsDeleted:      containsAny(text, deletedPatterns),
		IsMedia:        containsAny(text, mediaPatterns),
		Sentiment:      sentiment,
		SentimentScore: score,
	}
}

// Score counts positive minus negative keywords over lowercased word tokens.
func Score(text string) (Sentiment, int) {
	score := 0
	for _, w := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if positiveWords[w] {
			score++
		}
		if negativeWords[w] {
			score--
		}
	}
	switch {
	case score > 0:
		return Positive, score
	case score < 0:
		return Negative, score
	default:
		return Neutral, score
	}
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func (m *Message) apply(c Classification) {
	m.IsDeleted = c.IsDeleted
	m.IsMedia = c.IsMedia
	m.Sentiment = c.Sentiment
	m.SentimentScore = c.SentimentScore
}

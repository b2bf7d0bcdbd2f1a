package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Classification
	}{
		{
			name: "deleted notice",
			text: "This message was deleted",
			want: Classification{IsDeleted: true, Sentiment: Neutral},
		},
		{
			name: "own deletion",
			text: "You deleted this message",
			want: Classification{IsDeleted: true, Sentiment: Neutral},
		},
		{
			name: "media placeholder",
			text: "<Media omitted>",
			want: Classification{IsMedia: true, Sentiment: Neutral},
		},
		{
			name: "ios image placeholder",
			text: "image omitted",
			want: Classification{IsMedia: true, Sentiment: Neutral},
		},
		{
			name: "both flags",
			text: "This message was deleted <Media omitted>",
			want: Classification{IsDeleted: true, IsMedia: true, Sentiment: Neutral},
		},
		{
			name: "positive",
			text: "Thanks, that was GREAT haha",
			want: Classification{Sentiment: Positive, SentimentScore: 3},
		},
		{
			name: "negative",
			text: "no, never. sorry",
			want: Classification{Sentiment: Negative, SentimentScore: -3},
		},
		{
			name: "cancels out",
			text: "good but bad",
			want: Classification{Sentiment: Neutral, SentimentScore: 0},
		},
		{
			name: "substring is not a token",
			text: "goodness badge",
			want: Classification{Sentiment: Neutral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestMessageKind(t *testing.T) {
	assert.Equal(t, KindDeleted, Message{IsDeleted: true, IsMedia: true}.Kind())
	assert.Equal(t, KindMedia, Message{IsMedia: true}.Kind())
	assert.Equal(t, KindText, Message{}.Kind())
}

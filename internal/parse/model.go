package parse

type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Kind is the exclusive classification used when counting a message.
type Kind int

const (
	KindText Kind = iota
	KindMedia
	KindDeleted
)

type Message struct {
	Date           string    `json:"date"` // YYYY-MM-DD when normalizable, raw otherwise
	Time           string    `json:"time"` // as written, may carry am/pm
	DateTime       string    `json:"datetime"`
	Sender         string    `json:"sender"`
	Text           string    `json:"message"`
	IsMedia        bool      `json:"isMedia"`
	IsDeleted      bool      `json:"isDeleted"`
	Sentiment      Sentiment `json:"sentiment"`
	SentimentScore int       `json:"sentimentScore"`
}

// Kind resolves the two independent flags; deleted wins over media.
func (m Message) Kind() Kind {
	switch {
	case m.IsDeleted:
		return KindDeleted
	case m.IsMedia:
		return KindMedia
	default:
		return KindText
	}
}

// Hour returns the 24-hour hour of day of the message.
func (m Message) Hour() int {
	return Hour(m.Time)
}

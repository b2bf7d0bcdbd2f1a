package metrics

// AnalysisMetrics is the full summary of one transcript. It is built once by
// Aggregate and never modified afterwards.
type AnalysisMetrics struct {
	TotalMessages      int                `json:"totalMessages"`
	TotalWords         int                `json:"totalWords"`
	TotalMedia         int                `json:"totalMedia"`
	TotalDeleted       int                `json:"totalDeleted"`
	Participants       []string           `json:"participants"`
	UserStats          []UserStats        `json:"userStats"`
	Timeline           []TimelinePoint    `json:"timeline"`
	ActivityByDay      []DayActivity      `json:"activityByDay"`
	ActivityByMonth    []MonthActivity    `json:"activityByMonth"`
	HourlyActivity     []HourActivity     `json:"hourlyActivity"`
	TopWords           []WordCount        `json:"topWords"`
	TopEmojis          []EmojiCount       `json:"topEmojis"`
	InteractionHeatmap []HeatmapCell      `json:"interactionHeatmap"`
	SentimentTrend     []SentimentTally   `json:"sentimentTrend"`
	BusiestDay         TimelinePointCount `json:"busiestDay"`
	BusiestMonth       MonthActivity      `json:"busiestMonth"`
	BusiestHour        HourActivity       `json:"busiestHour"`
}

type UserStats struct {
	Sender               string       `json:"sender"`
	MessageCount         int          `json:"messageCount"`
	MediaCount           int          `json:"mediaCount"`
	DeletedCount         int          `json:"deletedCount"`
	WordCount            int          `json:"wordCount"`
	AverageMessageLength float64      `json:"averageMessageLength"` // words per message
	TopEmojis            []EmojiCount `json:"topEmojis"`
}

type TimelinePoint struct {
	Date         string `json:"date"`
	MessageCount int    `json:"messageCount"`
}

// TimelinePointCount is the busiest-day summary.
type TimelinePointCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DayActivity struct {
	DayOfWeek string `json:"dayOfWeek"`
	Count     int    `json:"count"`
}

type MonthActivity struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type HourActivity struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

type HeatmapCell struct {
	Day   string `json:"day"`
	Hour  int    `json:"hour"`
	Count int    `json:"count"`
}

type SentimentTally struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

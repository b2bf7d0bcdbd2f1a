package metrics

import (
	"cmp"
	"slices"
	"time"

	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
)

const (
	topWordsLimit      = 50
	topEmojisLimit     = 20
	userTopEmojisLimit = 5
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Analyze parses a transcript with day-first dates and aggregates it.
func Analyze(content string) AnalysisMetrics {
	return Aggregate(parse.Parse(content))
}

// AnalyzeWith is Analyze with a configured parser.
func AnalyzeWith(p *parse.Parser, content string) AnalysisMetrics {
	return Aggregate(p.Parse(content))
}

type senderAcc struct {
	stats  UserStats
	emojis *counter
}

type heatKey struct {
	day  time.Weekday
	hour int
}

// tables is the working state of one Aggregate call.
type tables struct {
	result AnalysisMetrics

	senders     map[string]*senderAcc
	senderOrder []*senderAcc

	words  *counter
	emojis *counter

	byDate    map[string]int
	byWeekday map[time.Weekday]int
	byMonth   map[time.Month]int
	byHour    map[int]int
	heat      map[heatKey]int
	sentiment map[string]*SentimentTally
}

// Aggregate computes every metric in a single pass over msgs. It is a pure
// function: the same input always yields an identical result.
func Aggregate(msgs []parse.Message) AnalysisMetrics {
	t := &tables{
		senders:   make(map[string]*senderAcc),
		words:     newCounter(),
		emojis:    newCounter(),
		byDate:    make(map[string]int),
		byWeekday: make(map[time.Weekday]int),
		byMonth:   make(map[time.Month]int),
		byHour:    make(map[int]int),
		heat:      make(map[heatKey]int),
		sentiment: make(map[string]*SentimentTally),
	}
	for _, m := range msgs {
		t.add(m)
	}
	return t.finish(len(msgs))
}

func (t *tables) sender(name string) *senderAcc {
	if s, ok := t.senders[name]; ok {
		return s
	}
	s := &senderAcc{stats: UserStats{Sender: name}, emojis: newCounter()}
	t.senders[name] = s
	t.senderOrder = append(t.senderOrder, s)
	return s
}

func (t *tables) add(m parse.Message) {
	s := t.sender(m.Sender)
	s.stats.MessageCount++

	switch m.Kind() {
	case parse.KindDeleted:
		t.result.TotalDeleted++
		s.stats.DeletedCount++
	case parse.KindMedia:
		t.result.TotalMedia++
		s.stats.MediaCount++
	default:
		words := extractWords(m.Text)
		t.result.TotalWords += len(words)
		s.stats.WordCount += len(words)
		for _, w := range words {
			t.words.add(w, 1)
		}
		for _, e := range extractEmojis(m.Text) {
			t.emojis.add(e, 1)
			s.emojis.add(e, 1)
		}
	}

	t.byDate[m.Date]++

	// calendar buckets need a real date; unnormalized ones are skipped
	if d, err := time.Parse(time.DateOnly, m.Date); err == nil {
		hour := m.Hour()
		t.byWeekday[d.Weekday()]++
		t.byMonth[d.Month()]++
		t.byHour[hour]++
		t.heat[heatKey{day: d.Weekday(), hour: hour}]++
	}

	tally, ok := t.sentiment[m.Date]
	if !ok {
		tally = &SentimentTally{Date: m.Date}
		t.sentiment[m.Date] = tally
	}
	switch m.Sentiment {
	case parse.Positive:
		tally.Positive++
	case parse.Negative:
		tally.Negative++
	default:
		tally.Neutral++
	}
}

func (t *tables) finish(total int) AnalysisMetrics {
	r := t.result
	r.TotalMessages = total

	r.Participants = make([]string, 0, len(t.senderOrder))
	r.UserStats = make([]UserStats, 0, len(t.senderOrder))
	for _, s := range t.senderOrder {
		r.Participants = append(r.Participants, s.stats.Sender)
		st := s.stats
		if st.MessageCount > 0 {
			st.AverageMessageLength = float64(st.WordCount) / float64(st.MessageCount)
		}
		st.TopEmojis = emojiCounts(s.emojis.top(userTopEmojisLimit))
		r.UserStats = append(r.UserStats, st)
	}
	slices.SortStableFunc(r.UserStats, func(a, b UserStats) int {
		return b.MessageCount - a.MessageCount
	})

	r.Timeline = make([]TimelinePoint, 0, len(t.byDate))
	for _, date := range sortedKeys(t.byDate) {
		r.Timeline = append(r.Timeline, TimelinePoint{Date: date, MessageCount: t.byDate[date]})
	}

	r.ActivityByDay = make([]DayActivity, 0, len(t.byWeekday))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if n, ok := t.byWeekday[d]; ok {
			r.ActivityByDay = append(r.ActivityByDay, DayActivity{DayOfWeek: d.String(), Count: n})
		}
	}

	r.ActivityByMonth = make([]MonthActivity, 0, len(t.byMonth))
	for mo := time.January; mo <= time.December; mo++ {
		if n, ok := t.byMonth[mo]; ok {
			r.ActivityByMonth = append(r.ActivityByMonth, MonthActivity{Month: monthNames[mo-1], Count: n})
		}
	}

	r.HourlyActivity = make([]HourActivity, 0, len(t.byHour))
	for _, h := range sortedKeys(t.byHour) {
		r.HourlyActivity = append(r.HourlyActivity, HourActivity{Hour: h, Count: t.byHour[h]})
	}

	r.TopWords = wordCounts(t.words.top(topWordsLimit))
	r.TopEmojis = emojiCounts(t.emojis.top(topEmojisLimit))

	r.InteractionHeatmap = make([]HeatmapCell, 0, len(t.heat))
	keys := make([]heatKey, 0, len(t.heat))
	for k := range t.heat {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b heatKey) int {
		if c := cmp.Compare(a.day, b.day); c != 0 {
			return c
		}
		return cmp.Compare(a.hour, b.hour)
	})
	for _, k := range keys {
		r.InteractionHeatmap = append(r.InteractionHeatmap, HeatmapCell{Day: k.day.String(), Hour: k.hour, Count: t.heat[k]})
	}

	r.SentimentTrend = make([]SentimentTally, 0, len(t.sentiment))
	for _, date := range sortedKeys(t.sentiment) {
		r.SentimentTrend = append(r.SentimentTrend, *t.sentiment[date])
	}

	day := busiest(r.Timeline, func(p TimelinePoint) int { return p.MessageCount })
	r.BusiestDay = TimelinePointCount{Date: day.Date, Count: day.MessageCount}
	r.BusiestMonth = busiest(r.ActivityByMonth, func(m MonthActivity) int { return m.Count })
	r.BusiestHour = busiest(r.HourlyActivity, func(h HourActivity) int { return h.Count })

	return r
}

// busiest folds items keeping the first one with the strictly highest count.
// With no items, or only zero counts, it returns the zero value.
func busiest[T any](items []T, count func(T) int) T {
	var best T
	bestCount := 0
	for _, it := range items {
		if n := count(it); n > bestCount {
			best, bestCount = it, n
		}
	}
	return best
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

package metrics

import "slices"

type countEntry struct {
	key string
	n   int
}

// counter is a frequency table that remembers first-insertion order, so a
// stable sort on it breaks ties by first appearance.
type counter struct {
	idx     map[string]int
	entries []countEntry
}

func newCounter() *counter {
	return &counter{idx: make(map[string]int)}
}

func (c *counter) add(key string, n int) {
	if i, ok := c.idx[key]; ok {
		c.entries[i].n += n
		return
	}
	c.idx[key] = len(c.entries)
	c.entries = append(c.entries, countEntry{key: key, n: n})
}

// top returns at most limit entries by descending count. limit <= 0 means all.
func (c *counter) top(limit int) []countEntry {
	out := slices.Clone(c.entries)
	slices.SortStableFunc(out, func(a, b countEntry) int {
		return b.n - a.n
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func emojiCounts(entries []countEntry) []EmojiCount {
	out := make([]EmojiCount, 0, len(entries))
	for _, e := range entries {
		out = append(out, EmojiCount{Emoji: e.key, Count: e.n})
	}
	return out
}

func wordCounts(entries []countEntry) []WordCount {
	out := make([]WordCount, 0, len(entries))
	for _, e := range entries {
		out = append(out, WordCount{Word: e.key, Count: e.n})
	}
	return out
}

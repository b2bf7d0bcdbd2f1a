package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chat-analyzer/internal/metrics"
	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
)

const sampleChat = "01/02/2023, 10:30 - Alice: hello 😀 great\n" +
	"01/02/2023, 10:31 - Bob: hi there\nsecond line\n" +
	"02/02/2023, 9:00 pm - Alice: <Media omitted>\n"

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "cha.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// fixedClock returns successive times one minute apart starting at base.
func fixedClock(base time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		t := base.Add(time.Duration(n) * time.Minute)
		n++
		return t
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cha.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// second open finds the schema already migrated
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.SessionCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateAndGetSession(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	s.now = fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC))

	msgs := parse.Parse(sampleChat)
	m := metrics.Aggregate(msgs)

	created, err := s.CreateSession(ctx, "chat.txt", m, msgs)
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.True(t, created.CreatedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 123456000, time.UTC)))

	got, err := s.GetSession(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "chat.txt", got.Filename)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	assert.Equal(t, m, got.Metrics)

	stored, err := s.Messages(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, msgs, stored)

	nMsgs, err := s.MessageCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, nMsgs)

	nFTS, err := s.FTSCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, nFTS)
	assert.NoError(t, s.CheckFTS(ctx))
}

func TestGetSession_Missing(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetSession(context.Background(), 42)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecentSessions(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	s.now = fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	var ids []int64
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		sess, err := s.CreateSession(ctx, name, metrics.Analyze(sampleChat), nil)
		require.NoError(t, err)
		ids = append(ids, sess.ID)
	}

	recent, err := s.RecentSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c.txt", recent[0].Filename)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, "b.txt", recent[1].Filename)
	assert.Equal(t, 3, recent[0].TotalMessages)
	assert.Equal(t, 2, recent[0].Participants)

	all, err := s.RecentSessions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecentSessions_Empty(t *testing.T) {
	s := openTestStore(t)

	recent, err := s.RecentSessions(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, recent)
	assert.Empty(t, recent)
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	msgs := parse.Parse(sampleChat)

	sess, err := s.CreateSession(ctx, "chat.txt", metrics.Aggregate(msgs), msgs)
	require.NoError(t, err)

	require.NoError(t, s.DeleteSession(ctx, sess.ID))

	got, err := s.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	n, err := s.MessageCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = s.FTSCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPruneBefore(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(base)
	msgs := parse.Parse(sampleChat)

	for i := 0; i < 3; i++ {
		_, err := s.CreateSession(ctx, "chat.txt", metrics.Aggregate(msgs), msgs)
		require.NoError(t, err)
	}

	// sessions at +0m, +1m, +2m; cutoff keeps the last one
	pruned, err := s.PruneBefore(ctx, base.Add(90*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2, pruned)

	n, err := s.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = s.MessageCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(msgs), n)
}

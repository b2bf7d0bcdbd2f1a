package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Zuo-Peng/chat-analyzer/internal/metrics"
	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
)

// CreateSession stores the metrics and the parsed messages behind them in
// one transaction and returns the new session with its generated id.
func (s *Store) CreateSession(ctx context.Context, filename string, m metrics.AnalysisMetrics, msgs []parse.Message) (*Session, error) {
	blob, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode metrics: %w", err)
	}
	created := s.now().UTC().Truncate(timeLayoutPrecision)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (filename, created_at, total_messages, participants, metrics)
		 VALUES (?, ?, ?, ?, ?)`,
		filename,
		created.Format(timeLayout),
		m.TotalMessages,
		len(m.Participants),
		string(blob),
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO messages (session_id, seq, date, time, sender, text, is_media, is_deleted, sentiment, sentiment_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for i, msg := range msgs {
		_, err := stmt.ExecContext(ctx,
			id,
			i,
			msg.Date,
			msg.Time,
			msg.Sender,
			msg.Text,
			msg.IsMedia,
			msg.IsDeleted,
			string(msg.Sentiment),
			msg.SentimentScore,
		)
		if err != nil {
			return nil, fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &Session{ID: id, Filename: filename, CreatedAt: created, Metrics: m}, nil
}

type messageRow struct {
	Seq            int    `db:"seq"`
	Date           string `db:"date"`
	Time           string `db:"time"`
	Sender         string `db:"sender"`
	Text           string `db:"text"`
	IsMedia        bool   `db:"is_media"`
	IsDeleted      bool   `db:"is_deleted"`
	Sentiment      string `db:"sentiment"`
	SentimentScore int    `db:"sentiment_score"`
}

// Messages returns a session's messages in transcript order.
func (s *Store) Messages(ctx context.Context, sessionID int64) ([]parse.Message, error) {
	var rows []messageRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT seq, date, time, sender, text, is_media, is_deleted, sentiment, sentiment_score
		 FROM messages WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]parse.Message, 0, len(rows))
	for _, r := range rows {
		out = append(out, parse.Message{
			Date:           r.Date,
			Time:           r.Time,
			DateTime:       r.Date + " " + r.Time,
			Sender:         r.Sender,
			Text:           r.Text,
			IsMedia:        r.IsMedia,
			IsDeleted:      r.IsDeleted,
			Sentiment:      parse.Sentiment(r.Sentiment),
			SentimentScore: r.SentimentScore,
		})
	}
	return out, nil
}

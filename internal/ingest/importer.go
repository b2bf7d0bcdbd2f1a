// Package ingest runs chat exports through parse, aggregate and store.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/Zuo-Peng/chat-analyzer/internal/metrics"
	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/chat-analyzer/internal/scan"
	"github.com/Zuo-Peng/chat-analyzer/internal/store"
)

type Stats struct {
	Scanned  int
	Imported int
	Empty    int
	Errors   int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d imported=%d empty=%d errors=%d",
		s.Scanned, s.Imported, s.Empty, s.Errors)
}

// Result is one successfully analyzed file.
type Result struct {
	Path    string
	Session *store.Session
}

// ImportAll analyzes and stores every file. A file that cannot be read or
// stored is logged and counted; only a cancelled context stops the run.
func ImportAll(ctx context.Context, st *store.Store, p *parse.Parser, files []scan.FileInfo) (Stats, []Result, error) {
	stats := Stats{Scanned: len(files)}
	var results []Result

	for _, fi := range files {
		if err := ctx.Err(); err != nil {
			return stats, results, err
		}

		content, err := os.ReadFile(fi.Path)
		if err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("file", fi.Path).Msg("read export")
			continue
		}

		msgs := p.Parse(string(content))
		if len(msgs) == 0 {
			stats.Empty++
			log.Debug().Str("file", fi.Path).Msg("no messages")
			continue
		}

		sess, err := st.CreateSession(ctx, filepath.Base(fi.Path), metrics.Aggregate(msgs), msgs)
		if err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("file", fi.Path).Msg("store session")
			continue
		}
		log.Debug().Str("file", fi.Path).Int64("session", sess.ID).Int("messages", len(msgs)).Msg("imported")

		stats.Imported++
		results = append(results, Result{Path: fi.Path, Session: sess})
	}

	return stats, results, nil
}

package retention

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// gocronLogger sends scheduler logs to zerolog. gocron passes alternating
// key/value args.
type gocronLogger struct{}

var _ gocron.Logger = gocronLogger{}

func (gocronLogger) Debug(msg string, args ...any) { emit(log.Debug(), msg, args) }
func (gocronLogger) Info(msg string, args ...any)  { emit(log.Info(), msg, args) }
func (gocronLogger) Warn(msg string, args ...any)  { emit(log.Warn(), msg, args) }
func (gocronLogger) Error(msg string, args ...any) { emit(log.Error(), msg, args) }

func emit(e *zerolog.Event, msg string, args []any) {
	e.Str("component", "scheduler").Fields(pairs(args)).Msg(msg)
}

// pairs keys every value by its preceding arg. A trailing key without a
// value is kept under "extra".
func pairs(args []any) map[string]any {
	out := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			out["extra"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		if err, isErr := args[i+1].(error); isErr {
			out[key] = err.Error()
			continue
		}
		out[key] = args[i+1]
	}
	return out
}

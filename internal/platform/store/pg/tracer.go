package pg

import (
	"context"
	"strings"

	"domamarket/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives query events
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement regardless of the root level.
// Arguments are counted, not printed: cart payloads are whole documents.
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	if id := logger.RequestID(ctx); id != "" {
		evt = evt.Str("request_id", id)
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Int("args", len(ev.Args)).
		Err(ev.Err).
		Msg("pg query")
}

// compact collapses all whitespace runs to one space
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }

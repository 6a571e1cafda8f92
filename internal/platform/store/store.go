// Package store wraps the optional Postgres backend behind small query seams.
// The cart repository is its only consumer; the API runs without it by default.
package store

import (
	"context"
	"errors"
	"fmt"

	"domamarket/internal/platform/logger"
)

// Store holds the opened backends; a nil PG means Postgres is disabled
type Store struct {
	Log logger.Logger
	PG  TxRunner
}

// Row is the single-row scan contract
type Row interface {
	Scan(dest ...any) error
}

// Rows is the result-set iteration contract
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports write results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner adds transactions on top of RowQuerier
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger handed to the query tracer
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// Open connects the backends enabled in cfg
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Named("store")}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	if cfg.PG.Enabled {
		p, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = p
	}
	return s, nil
}

// Guard pings every opened backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
	}
	return nil
}

// Close releases opened backends; safe on a zero Store
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

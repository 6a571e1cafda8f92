// Package poll runs a function on a fixed interval until stopped.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"domamarket/internal/platform/logger"
)

// Option configures a Task
type Option func(*options)

type options struct {
	name    string
	onError func(error)
}

// WithName labels the task in logs
func WithName(name string) Option { return func(o *options) { o.name = name } }

// OnError receives every error fn returns; errors never stop the loop
func OnError(fn func(error)) Option { return func(o *options) { o.onError = fn } }

// Task is a running poll loop
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	alive  atomic.Bool
	once   sync.Once
}

// Start runs fn now and then every interval until ctx ends or Stop is called.
// fn receives the task ctx, which is canceled by Stop.
func Start(ctx context.Context, every time.Duration, fn func(context.Context) error, opts ...Option) *Task {
	o := options{name: "poll"}
	for _, opt := range opts {
		opt(&o)
	}
	if every <= 0 {
		every = time.Second
	}

	tctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	t.alive.Store(true)

	go func() {
		defer close(t.done)
		defer t.alive.Store(false)
		log := logger.Named(o.name)

		run := func() {
			if err := fn(tctx); err != nil && tctx.Err() == nil {
				log.Warn().Err(err).Msg("poll failed")
				if o.onError != nil {
					o.onError(err)
				}
			}
		}

		run()
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-tctx.Done():
				return
			case <-ticker.C:
				if tctx.Err() != nil {
					return
				}
				run()
			}
		}
	}()
	return t
}

// Stop cancels the task and waits for the loop to exit; safe to call more than once
func (t *Task) Stop() {
	t.once.Do(func() {
		t.alive.Store(false)
		t.cancel()
	})
	<-t.done
}

// Alive reports whether results of the task are still wanted
func (t *Task) Alive() bool { return t.alive.Load() }

// Done is closed once the loop has exited
func (t *Task) Done() <-chan struct{} { return t.done }

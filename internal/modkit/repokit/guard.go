package repokit

import (
	"context"
	"fmt"
	"time"
)

// Pinger answers readiness checks
type Pinger interface {
	Ping(context.Context) error
}

// Ping checks a dependency, bounding ctx by timeout when it has no deadline
func Ping(ctx context.Context, name string, p Pinger, timeout time.Duration) error {
	if p == nil {
		return fmt.Errorf("%s: nil dependency", name)
	}
	if _, ok := ctx.Deadline(); !ok && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("%s ping failed: %w", name, err)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPoolFault is passed to the fault handler when the pool stops answering.
var ErrPoolFault = errors.New("unexpected connection pool error")

// Pinger checks that the database is reachable.
// Satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watch pings p every interval until ctx is done. The first failed ping is
// wrapped in ErrPoolFault, handed to onFault and ends the watch. Nothing is
// retried; the server treats a pool fault as fatal.
func Watch(ctx context.Context, p Pinger, interval time.Duration, onFault func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, interval)
			err := p.Ping(pingCtx)
			cancel()

			if err == nil {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			onFault(fmt.Errorf("%w: %w", ErrPoolFault, err))
			return
		}
	}
}

// Package commentary judges a finished run with a rank and a one-line remark.
package commentary

import (
	"context"
	"time"
)

//go:generate go tool mockgen -destination=./mocks/service_mock.go -package=mocks . Service

// DefaultTimeout bounds how long the game over screen waits for a verdict.
const DefaultTimeout = 2 * time.Second

// Stats summarizes a finished run.
type Stats struct {
	Mode     string
	Score    int
	Sliced   int
	BombsHit int
	Missed   int
	Elapsed  time.Duration
}

// Verdict is the judgement shown on the game over screen.
type Verdict struct {
	Rank    string
	Message string
}

// Fallback is shown when no verdict arrives in time.
var Fallback = Verdict{Rank: "-", Message: "The judges are speechless."}

// Service evaluates runs. Implementations must honor ctx cancellation.
type Service interface {
	Evaluate(ctx context.Context, stats Stats) (Verdict, error)
}

// Resolve asks svc for a verdict, giving up after timeout. Errors, empty
// verdicts and timeouts all yield Fallback.
func Resolve(ctx context.Context, svc Service, stats Stats, timeout time.Duration) Verdict {
	if svc == nil {
		return Fallback
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   Verdict
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := svc.Evaluate(ctx, stats)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		if r.err != nil || r.v.Rank == "" {
			return Fallback
		}
		return r.v
	case <-ctx.Done():
		return Fallback
	}
}

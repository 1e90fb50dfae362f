// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"context"
	"fmt"
	"time"
)

// ErrPollExhausted is returned when a bounded poll gives up before the
// device converges on the commanded value.
var ErrPollExhausted = fmt.Errorf("poll attempts exhausted")

// PollConfig bounds a convergence poll. The zero value polls forever with
// no inter-read delay, matching the hardware's legacy busy-wait behavior;
// callers wanting an escape path set MaxAttempts or cancel the context.
type PollConfig struct {
	// Interval is the wait between reads after a non-matching value.
	Interval time.Duration

	// MaxAttempts caps the number of reads; 0 means unbounded.
	MaxAttempts int
}

// pollUntil re-reads until the value matches target. Cancellation is
// honored between reads even for tight zero-interval loops.
func pollUntil(ctx context.Context, cfg PollConfig, read func() (int, error), target int) error {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		value, err := read()
		if err != nil {
			return err
		}
		if value == target {
			return nil
		}

		attempts++
		if cfg.MaxAttempts > 0 && attempts >= cfg.MaxAttempts {
			return fmt.Errorf("%w: target %d not reached after %d reads, last value %d",
				ErrPollExhausted, target, attempts, value)
		}

		if cfg.Interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.Interval):
			}
		}
	}
}

package item

import (
	"context"
	"time"
)

// Recomputer performs the heavy recompute for an item. The work takes
// Difficulty times the configured unit and is split into steps with a
// cancellation check at entry and between steps.
type Recomputer struct {
	unit  time.Duration
	steps int
}

// NewRecomputer creates a recomputer. Steps below one are treated as one.
func NewRecomputer(unit time.Duration, steps int) *Recomputer {
	if steps < 1 {
		steps = 1
	}
	if unit < 0 {
		unit = 0
	}
	return &Recomputer{unit: unit, steps: steps}
}

// Duration returns how long a recompute at difficulty takes.
func (r *Recomputer) Duration(difficulty float64) time.Duration {
	return time.Duration(difficulty * float64(r.unit))
}

// Run waits out the recompute and returns its result: the difficulty
// expressed in milliseconds at one second per unit.
func (r *Recomputer) Run(ctx context.Context, difficulty float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	step := r.Duration(difficulty) / time.Duration(r.steps)
	for i := 0; i < r.steps; i++ {
		if step > 0 {
			timer := time.NewTimer(step)
			select {
			case <-ctx.Done():
				timer.Stop()
				return 0, ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return 0, err
		}
	}

	return Result(difficulty), nil
}

// Result is the recompute outcome for difficulty.
func Result(difficulty float64) int {
	return int(difficulty * 1000)
}

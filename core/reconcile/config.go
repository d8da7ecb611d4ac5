package reconcile

import "time"

// Config holds configuration for reconcile passes and the recompute that follows.
type Config struct {
	// Concurrency bounds the number of recompute units running at once.
	Concurrency int `mapstructure:"concurrency" default:"4"`
	// RecomputeUnitMS is the recompute time per unit of difficulty, in milliseconds.
	RecomputeUnitMS int `mapstructure:"recompute_unit_ms" default:"1000"`
	// RecomputeSteps splits a recompute into steps with cancellation checks between them.
	RecomputeSteps int `mapstructure:"recompute_steps" default:"10"`
	// IgnoreFields are top-level snapshot fields skipped by the edit check.
	IgnoreFields []string `mapstructure:"ignore_fields" default:"Result,Locked,AdditionalProperties"`
	// ReportPrefix is the object storage prefix reconcile reports are written under.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/"`
}

// RecomputeUnit returns the recompute duration per unit of difficulty.
func (c Config) RecomputeUnit() time.Duration {
	if c.RecomputeUnitMS < 0 {
		return 0
	}
	return time.Duration(c.RecomputeUnitMS) * time.Millisecond
}

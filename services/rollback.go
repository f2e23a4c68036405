package services

import (
	"context"

	"github.com/rs/zerolog/log"
)

// rollback collects compensating steps for multi-document writes that have
// no transaction around them. Steps run newest first.
type rollback struct {
	steps []rollbackStep
}

type rollbackStep struct {
	name string
	fn   func(ctx context.Context) error
}

func (r *rollback) add(name string, fn func(ctx context.Context) error) {
	r.steps = append(r.steps, rollbackStep{name: name, fn: fn})
}

// run executes every step even if one fails; failures are only logged since
// the caller is already returning the original error.
func (r *rollback) run(ctx context.Context) {
	for i := len(r.steps) - 1; i >= 0; i-- {
		step := r.steps[i]
		if err := step.fn(context.WithoutCancel(ctx)); err != nil {
			log.Error().Err(err).Str("step", step.name).Msg("rollback step failed")
		}
	}
	r.steps = nil
}

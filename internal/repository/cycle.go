package repository

import (
	"context"

	"github.com/stulang/stulang/internal/entity"
)

// CycleRepository is the remote boundary for cycle lifecycle operations.
// The server enforces the at-most-one-active-cycle invariant; Create
// surfaces entity.ErrCycleConflict when it refuses, and Current returns
// entity.ErrNoActiveCycle as a normal empty state.
type CycleRepository interface {
	Create(ctx context.Context, d entity.CycleDuration) (*entity.Cycle, error)
	Current(ctx context.Context) (*entity.Cycle, error)
}

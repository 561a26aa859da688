package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

// CycleUsecase owns the notion of "the current study cycle" and its
// temporal state.
type CycleUsecase interface {
	// Create starts a new cycle. An all-zero duration is rejected before
	// any network call with entity.ErrZeroDuration.
	Create(ctx context.Context, d entity.CycleDuration) (*entity.Cycle, error)
	// Current returns the active cycle, or entity.ErrNoActiveCycle when
	// the user has none. Callers treat the latter as an empty state.
	Current(ctx context.Context) (*entity.Cycle, error)
	// Watch invokes tick at the given cadence with the remaining time,
	// recomputed from the cycle end and the wall clock on every tick.
	// It blocks until the cycle expires or ctx is cancelled.
	Watch(ctx context.Context, c entity.Cycle, every time.Duration, tick func(entity.Countdown, bool))
}

// NewCycleUsecase wires the repository with default behaviour. onCreated
// hooks run after a successful create, letting dependent caches
// invalidate themselves.
func NewCycleUsecase(repo repository.CycleRepository, log *logrus.Logger, onCreated ...func()) CycleUsecase {
	return &cycleUsecase{
		repo:      repo,
		log:       log,
		clock:     time.Now,
		onCreated: onCreated,
	}
}

type cycleUsecase struct {
	repo      repository.CycleRepository
	log       *logrus.Logger
	clock     func() time.Time
	onCreated []func()
}

func (u *cycleUsecase) Create(ctx context.Context, d entity.CycleDuration) (*entity.Cycle, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	cycle, err := u.repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"cycle_id": cycle.ID,
		"ends_at":  cycle.End,
	}).Info("learning cycle created")

	for _, fn := range u.onCreated {
		fn()
	}
	return cycle, nil
}

func (u *cycleUsecase) Current(ctx context.Context) (*entity.Cycle, error) {
	return u.repo.Current(ctx)
}

func (u *cycleUsecase) Watch(ctx context.Context, c entity.Cycle, every time.Duration, tick func(entity.Countdown, bool)) {
	if every <= 0 {
		every = time.Second
	}

	// Always derive from the stored end time, never by decrementing: a
	// suspended process resumes with a correct countdown.
	emit := func() bool {
		cd, running := c.Remaining(u.clock())
		tick(cd, running)
		return running
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}

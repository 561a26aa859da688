package repository

import (
	"context"

	"github.com/stulang/stulang/internal/entity"
)

// PracticeRepository is the remote boundary for generating a practice set
// and reporting its results.
type PracticeRepository interface {
	// FetchSet returns up to count questions drawn from the active cycle.
	// entity.ErrNoActiveCycle signals the legitimate empty state.
	FetchSet(ctx context.Context, count int) ([]entity.Question, error)
	// SubmitResults sends one scored batch. The server promotes correct
	// items to learned and evicts them from the cycle's pending set.
	SubmitResults(ctx context.Context, results []entity.QuizResult) (*entity.PracticeReport, error)
}

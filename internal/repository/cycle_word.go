package repository

import (
	"context"

	"github.com/stulang/stulang/internal/entity"
)

// ListCycleWordsQuery narrows, orders and pages the active cycle's
// vocabulary. All of it is evaluated server-side; the client never
// re-filters a fetched page.
type ListCycleWordsQuery struct {
	Pagination
	Sort Sorting

	Level        string
	Topic        string
	PartOfSpeech string
	Search       string
	Status       entity.WordStatus
}

// CycleWordPage is one server page of cycle vocabulary plus the totals
// needed to drive paging.
type CycleWordPage struct {
	Items []entity.CycleWord
	Total int
	Pages int
}

// CycleWordRepository is the remote boundary for the cycle item store.
type CycleWordRepository interface {
	List(ctx context.Context, q *ListCycleWordsQuery) (*CycleWordPage, error)
	// Add puts a word into the active cycle. Errors: ErrWordAlreadyInCycle,
	// ErrNoActiveCycle, ErrCycleExpired, ErrWordNotFound.
	Add(ctx context.Context, wordID int64) (*entity.CycleWord, error)
	// MarkLearned promotes a word directly, outside the test flow.
	MarkLearned(ctx context.Context, wordID int64) error
}

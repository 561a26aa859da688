package usecase

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

const defaultPageSize = 20

// CycleWordUsecase presents the paginated, filterable projection of the
// active cycle's vocabulary. Filtering, sorting and paging are delegated
// to the server; the local cache only mirrors the last page fetched and
// is invalidated whenever server state may have moved.
type CycleWordUsecase interface {
	List(ctx context.Context, q *repository.ListCycleWordsQuery) (*repository.CycleWordPage, error)
	Add(ctx context.Context, wordID int64) (*entity.CycleWord, error)
	// MarkLearned promotes a word directly. The cached page is updated
	// optimistically; the next List reconciles with server truth.
	MarkLearned(ctx context.Context, wordID int64) error
	// Cached returns the last page fetched, if a fresh one exists.
	Cached() (*repository.CycleWordPage, bool)
	// Invalidate drops the cache and supersedes in-flight fetches.
	Invalidate()
}

// NewCycleWordUsecase wires the repository with default behaviour.
func NewCycleWordUsecase(repo repository.CycleWordRepository, log *logrus.Logger) CycleWordUsecase {
	return &cycleWordUsecase{repo: repo, log: log}
}

type cycleWordUsecase struct {
	repo repository.CycleWordRepository
	log  *logrus.Logger

	mu    sync.Mutex
	gen   uint64
	cache *repository.CycleWordPage
}

func (u *cycleWordUsecase) List(ctx context.Context, q *repository.ListCycleWordsQuery) (*repository.CycleWordPage, error) {
	if q == nil {
		q = &repository.ListCycleWordsQuery{}
	}
	q.Normalize(defaultPageSize)

	u.mu.Lock()
	u.gen++
	gen := u.gen
	u.mu.Unlock()

	page, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	// A fetch superseded by a newer List or an Invalidate must not
	// overwrite newer state; its result is still returned to the caller.
	if gen == u.gen {
		u.cache = page
	}
	u.mu.Unlock()
	return page, nil
}

func (u *cycleWordUsecase) Add(ctx context.Context, wordID int64) (*entity.CycleWord, error) {
	item, err := u.repo.Add(ctx, wordID)
	if err != nil {
		return nil, err
	}
	u.log.WithField("word_id", wordID).Debug("word added to cycle")
	u.Invalidate()
	return item, nil
}

func (u *cycleWordUsecase) MarkLearned(ctx context.Context, wordID int64) error {
	if err := u.repo.MarkLearned(ctx, wordID); err != nil {
		return err
	}

	u.mu.Lock()
	if u.cache != nil {
		for i := range u.cache.Items {
			if u.cache.Items[i].WordID == wordID {
				u.cache.Items[i].Status = entity.StatusLearned
			}
		}
	}
	u.mu.Unlock()
	return nil
}

func (u *cycleWordUsecase) Cached() (*repository.CycleWordPage, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cache == nil {
		return nil, false
	}
	return u.cache, true
}

func (u *cycleWordUsecase) Invalidate() {
	u.mu.Lock()
	u.gen++
	u.cache = nil
	u.mu.Unlock()
}

package usecase

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

// DictionaryUsecase exposes the canonical vocabulary store: browsing by
// level/topic, keyword search, and progress statistics.
type DictionaryUsecase interface {
	List(ctx context.Context, q *repository.ListWordsQuery) (*repository.WordPage, error)
	Search(ctx context.Context, keyword string) ([]entity.Word, error)
	Get(ctx context.Context, wordID int64) (*entity.Word, error)
	Topics(ctx context.Context) ([]string, error)
	Levels(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context) (*entity.VocabularyStatistics, error)
	LearnedWords(ctx context.Context, p repository.Pagination) ([]entity.LearnedWord, error)
}

// NewDictionaryUsecase wires the repository with default behaviour.
func NewDictionaryUsecase(repo repository.DictionaryRepository, log *logrus.Logger) DictionaryUsecase {
	return &dictionaryUsecase{repo: repo, log: log}
}

type dictionaryUsecase struct {
	repo repository.DictionaryRepository
	log  *logrus.Logger
}

func (u *dictionaryUsecase) List(ctx context.Context, q *repository.ListWordsQuery) (*repository.WordPage, error) {
	if q == nil {
		q = &repository.ListWordsQuery{}
	}
	q.Normalize(defaultPageSize)
	return u.repo.List(ctx, q)
}

func (u *dictionaryUsecase) Search(ctx context.Context, keyword string) ([]entity.Word, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, entity.ErrEmptyKeyword
	}
	return u.repo.Search(ctx, keyword)
}

func (u *dictionaryUsecase) Get(ctx context.Context, wordID int64) (*entity.Word, error) {
	if wordID <= 0 {
		return nil, entity.ErrWordNotFound
	}
	return u.repo.Get(ctx, wordID)
}

func (u *dictionaryUsecase) Topics(ctx context.Context) ([]string, error) {
	return u.repo.Topics(ctx)
}

func (u *dictionaryUsecase) Levels(ctx context.Context) ([]string, error) {
	return u.repo.Levels(ctx)
}

func (u *dictionaryUsecase) Statistics(ctx context.Context) (*entity.VocabularyStatistics, error) {
	return u.repo.Statistics(ctx)
}

func (u *dictionaryUsecase) LearnedWords(ctx context.Context, p repository.Pagination) ([]entity.LearnedWord, error) {
	p.Normalize(defaultPageSize)
	return u.repo.LearnedWords(ctx, p)
}

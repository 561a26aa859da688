package repository

import (
	"context"

	"github.com/stulang/stulang/internal/entity"
)

// ListWordsQuery narrows, orders and pages the canonical dictionary.
type ListWordsQuery struct {
	Pagination
	Sort Sorting

	Level        string
	Topic        string
	PartOfSpeech string
}

// WordPage is one server page of dictionary entries.
type WordPage struct {
	Items []entity.Word
	Total int
	Pages int
}

// DictionaryRepository is the remote boundary for the vocabulary store.
type DictionaryRepository interface {
	List(ctx context.Context, q *ListWordsQuery) (*WordPage, error)
	Search(ctx context.Context, keyword string) ([]entity.Word, error)
	Get(ctx context.Context, wordID int64) (*entity.Word, error)
	Topics(ctx context.Context) ([]string, error)
	Levels(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context) (*entity.VocabularyStatistics, error)
	LearnedWords(ctx context.Context, p Pagination) ([]entity.LearnedWord, error)
}

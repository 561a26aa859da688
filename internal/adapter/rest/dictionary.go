package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/samber/lo"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

type dictionaryRepository struct{ c *Client }

// NewDictionaryRepository binds the canonical vocabulary endpoints.
func NewDictionaryRepository(c *Client) repository.DictionaryRepository {
	return &dictionaryRepository{c: c}
}

func (r *dictionaryRepository) List(ctx context.Context, q *repository.ListWordsQuery) (*repository.WordPage, error) {
	params := pageParams(q.Pagination, q.Sort)
	setIfPresent(params, "level", q.Level)
	setIfPresent(params, "topic", q.Topic)
	setIfPresent(params, "part_of_speech", q.PartOfSpeech)

	var out pagedResponse[wordDTO]
	if err := r.c.get(ctx, "/vocabulary", params, &out); err != nil {
		return nil, mapErr(err, nil)
	}

	page := &repository.WordPage{
		Items: lo.Map(out.Items, func(d wordDTO, _ int) entity.Word { return d.toEntity() }),
		Total: out.Total,
		Pages: out.Pages,
	}
	if page.Pages == 0 && q.PageSize > 0 {
		page.Pages = (page.Total + q.PageSize - 1) / q.PageSize
	}
	return page, nil
}

func (r *dictionaryRepository) Search(ctx context.Context, keyword string) ([]entity.Word, error) {
	params := url.Values{}
	params.Set("keyword", keyword)

	var out []wordDTO
	if err := r.c.get(ctx, "/vocabulary/search", params, &out); err != nil {
		return nil, mapErr(err, nil)
	}
	return lo.Map(out, func(d wordDTO, _ int) entity.Word { return d.toEntity() }), nil
}

func (r *dictionaryRepository) Get(ctx context.Context, wordID int64) (*entity.Word, error) {
	var out wordDTO
	path := "/vocabulary/" + strconv.FormatInt(wordID, 10)
	if err := r.c.get(ctx, path, nil, &out); err != nil {
		return nil, mapErr(err, entity.ErrWordNotFound)
	}
	word := out.toEntity()
	return &word, nil
}

func (r *dictionaryRepository) Topics(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.c.get(ctx, "/vocabulary/topics", nil, &out); err != nil {
		return nil, mapErr(err, nil)
	}
	return out, nil
}

func (r *dictionaryRepository) Levels(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.c.get(ctx, "/vocabulary/levels", nil, &out); err != nil {
		return nil, mapErr(err, nil)
	}
	return out, nil
}

func (r *dictionaryRepository) Statistics(ctx context.Context) (*entity.VocabularyStatistics, error) {
	var out statisticsDTO
	if err := r.c.get(ctx, "/vocabulary/statistics", nil, &out); err != nil {
		return nil, mapErr(err, nil)
	}
	return out.toEntity(), nil
}

func (r *dictionaryRepository) LearnedWords(ctx context.Context, p repository.Pagination) ([]entity.LearnedWord, error) {
	params := pageParams(p, repository.Sorting{})

	var out pagedResponse[learnedWordDTO]
	if err := r.c.get(ctx, "/users/vocabulary", params, &out); err != nil {
		return nil, mapErr(err, nil)
	}
	return lo.Map(out.Items, func(d learnedWordDTO, _ int) entity.LearnedWord { return d.toEntity() }), nil
}

package rest

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

type cycleWordRepository struct{ c *Client }

// NewCycleWordRepository binds the cycle vocabulary endpoints.
func NewCycleWordRepository(c *Client) repository.CycleWordRepository {
	return &cycleWordRepository{c: c}
}

func (r *cycleWordRepository) List(ctx context.Context, q *repository.ListCycleWordsQuery) (*repository.CycleWordPage, error) {
	params := pageParams(q.Pagination, q.Sort)
	setIfPresent(params, "level", q.Level)
	setIfPresent(params, "topic", q.Topic)
	setIfPresent(params, "part_of_speech", q.PartOfSpeech)
	setIfPresent(params, "search", q.Search)
	setIfPresent(params, "status", string(q.Status))

	var out pagedResponse[cycleWordDTO]
	if err := r.c.get(ctx, "/cycles/vocabulary", params, &out); err != nil {
		return nil, mapErr(err, entity.ErrNoActiveCycle)
	}

	page := &repository.CycleWordPage{
		Items: lo.Map(out.Items, func(d cycleWordDTO, _ int) entity.CycleWord { return d.toEntity() }),
		Total: out.Total,
		Pages: out.Pages,
	}
	if page.Pages == 0 && q.PageSize > 0 {
		page.Pages = (page.Total + q.PageSize - 1) / q.PageSize
	}
	return page, nil
}

func (r *cycleWordRepository) Add(ctx context.Context, wordID int64) (*entity.CycleWord, error) {
	body := struct {
		WordID int64 `json:"word_id"`
	}{WordID: wordID}

	var out cycleWordDTO
	if err := r.c.post(ctx, "/cycles/vocabulary", body, &out); err != nil {
		if detail, ok := badRequestDetail(err); ok {
			switch {
			case strings.Contains(detail, "already"):
				return nil, entity.ErrWordAlreadyInCycle
			case strings.Contains(detail, "expired"), strings.Contains(detail, "ended"):
				return nil, entity.ErrCycleExpired
			}
			return nil, err
		}
		// A 404 here means either the word or the cycle is missing; the
		// server spells out which in the detail.
		if apiErr, ok := err.(*apiError); ok && apiErr.Status == 404 {
			if strings.Contains(strings.ToLower(apiErr.Detail), "word") {
				return nil, entity.ErrWordNotFound
			}
			return nil, entity.ErrNoActiveCycle
		}
		return nil, mapErr(err, nil)
	}
	cw := out.toEntity()
	return &cw, nil
}

func (r *cycleWordRepository) MarkLearned(ctx context.Context, wordID int64) error {
	path := "/vocabulary/mark-learned/" + strconv.FormatInt(wordID, 10)
	if err := r.c.post(ctx, path, nil, nil); err != nil {
		return mapErr(err, entity.ErrWordNotFound)
	}
	return nil
}

func pageParams(p repository.Pagination, s repository.Sorting) url.Values {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(p.Offset()))
	if p.PageSize > 0 {
		params.Set("limit", strconv.Itoa(p.PageSize))
	}
	if s.By != "" {
		params.Set("sort_by", s.By)
		order := "asc"
		if s.Desc {
			order = "desc"
		}
		params.Set("sort_order", order)
	}
	return params
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/samber/lo"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

type practiceRepository struct{ c *Client }

// NewPracticeRepository binds the practice set and results endpoints.
func NewPracticeRepository(c *Client) repository.PracticeRepository {
	return &practiceRepository{c: c}
}

func (r *practiceRepository) FetchSet(ctx context.Context, count int) ([]entity.Question, error) {
	params := url.Values{}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}

	var out []questionDTO
	if err := r.c.get(ctx, "/cycles/practice-set", params, &out); err != nil {
		return nil, mapErr(err, entity.ErrNoActiveCycle)
	}
	return lo.Map(out, func(d questionDTO, _ int) entity.Question { return d.toEntity() }), nil
}

func (r *practiceRepository) SubmitResults(ctx context.Context, results []entity.QuizResult) (*entity.PracticeReport, error) {
	body := struct {
		QuizResults []quizResultDTO `json:"quiz_results"`
	}{
		QuizResults: lo.Map(results, func(qr entity.QuizResult, _ int) quizResultDTO {
			return quizResultDTO{WordID: qr.WordID, SelectedAnswer: qr.SelectedAnswer, IsCorrect: qr.IsCorrect}
		}),
	}

	var out practiceReportDTO
	if err := r.c.post(ctx, "/cycles/practice-results", body, &out); err != nil {
		return nil, mapErr(err, entity.ErrNoActiveCycle)
	}
	return out.toEntity(), nil
}

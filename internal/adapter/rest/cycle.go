package rest

import (
	"context"
	"strings"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

type cycleRepository struct{ c *Client }

// NewCycleRepository binds the cycle lifecycle endpoints.
func NewCycleRepository(c *Client) repository.CycleRepository {
	return &cycleRepository{c: c}
}

func (r *cycleRepository) Create(ctx context.Context, d entity.CycleDuration) (*entity.Cycle, error) {
	body := struct {
		Duration durationDTO `json:"duration"`
	}{
		Duration: durationDTO{Days: d.Days, Hours: d.Hours, Minutes: d.Minutes, Seconds: d.Seconds},
	}

	var out cycleDTO
	if err := r.c.post(ctx, "/cycles", body, &out); err != nil {
		if detail, ok := badRequestDetail(err); ok {
			if strings.Contains(detail, "duration") {
				return nil, entity.ErrZeroDuration
			}
			return nil, entity.ErrCycleConflict
		}
		return nil, mapErr(err, nil)
	}
	return out.toEntity(), nil
}

func (r *cycleRepository) Current(ctx context.Context) (*entity.Cycle, error) {
	var out cycleDTO
	if err := r.c.get(ctx, "/cycles", nil, &out); err != nil {
		return nil, mapErr(err, entity.ErrNoActiveCycle)
	}
	return out.toEntity(), nil
}

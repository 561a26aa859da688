package rest

import (
	"context"

	"github.com/samber/lo"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

type chatRepository struct{ c *Client }

// NewChatRepository binds the conversation practice endpoints.
func NewChatRepository(c *Client) repository.ChatRepository {
	return &chatRepository{c: c}
}

func (r *chatRepository) Send(ctx context.Context, message string) (string, error) {
	body := struct {
		Message string `json:"message"`
	}{Message: message}

	var out struct {
		Response string `json:"response"`
	}
	if err := r.c.post(ctx, "/chat", body, &out); err != nil {
		return "", mapErr(err, nil)
	}
	return out.Response, nil
}

func (r *chatRepository) History(ctx context.Context, p repository.Pagination) ([]entity.ChatExchange, error) {
	params := pageParams(p, repository.Sorting{})

	var out pagedResponse[chatExchangeDTO]
	if err := r.c.get(ctx, "/chat/history", params, &out); err != nil {
		return nil, mapErr(err, nil)
	}
	return lo.Map(out.Items, func(d chatExchangeDTO, _ int) entity.ChatExchange { return d.toEntity() }), nil
}

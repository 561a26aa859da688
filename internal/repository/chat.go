package repository

import (
	"context"

	"github.com/stulang/stulang/internal/entity"
)

// ChatRepository is the remote boundary for AI conversation practice.
type ChatRepository interface {
	Send(ctx context.Context, message string) (string, error)
	History(ctx context.Context, p Pagination) ([]entity.ChatExchange, error)
}

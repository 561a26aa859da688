package usecase

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

// ChatUsecase drives AI conversation practice. The assistant itself runs
// server-side; this layer only validates input and relays turns.
type ChatUsecase interface {
	Send(ctx context.Context, message string) (string, error)
	History(ctx context.Context, p repository.Pagination) ([]entity.ChatExchange, error)
}

// NewChatUsecase wires the repository with default behaviour.
func NewChatUsecase(repo repository.ChatRepository, log *logrus.Logger) ChatUsecase {
	return &chatUsecase{repo: repo, log: log}
}

type chatUsecase struct {
	repo repository.ChatRepository
	log  *logrus.Logger
}

func (u *chatUsecase) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", entity.ErrEmptyMessage
	}
	return u.repo.Send(ctx, message)
}

func (u *chatUsecase) History(ctx context.Context, p repository.Pagination) ([]entity.ChatExchange, error) {
	p.Normalize(defaultPageSize)
	return u.repo.History(ctx, p)
}

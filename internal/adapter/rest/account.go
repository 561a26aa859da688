package rest

import (
	"context"
	"errors"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

type accountRepository struct{ c *Client }

// NewAccountRepository binds the login and profile endpoints.
func NewAccountRepository(c *Client) repository.AccountRepository {
	return &accountRepository{c: c}
}

func (r *accountRepository) Login(ctx context.Context, username, password string) (string, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := r.c.post(ctx, "/users/login", body, &out); err != nil {
		return "", mapErr(err, nil)
	}
	if out.AccessToken == "" {
		return "", errors.New("login: empty access token")
	}
	return out.AccessToken, nil
}

func (r *accountRepository) Profile(ctx context.Context) (*entity.User, error) {
	var out userDTO
	if err := r.c.get(ctx, "/users/me", nil, &out); err != nil {
		return nil, mapErr(err, nil)
	}
	return out.toEntity(), nil
}

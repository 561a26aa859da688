package repository

import (
	"context"

	"github.com/stulang/stulang/internal/entity"
)

// AccountRepository is the remote boundary for the login flow and the
// authenticated profile. Credential storage and validation are entirely
// server-side.
type AccountRepository interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, username, password string) (token string, err error)
	// Profile returns the account behind the current token.
	Profile(ctx context.Context) (*entity.User, error)
}

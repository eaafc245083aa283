package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/streamverse/vidtube/internal/domain"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u domain.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByLogin matches either username or email.
	GetUserByLogin(ctx context.Context, login string) (domain.User, error)

	UpdateUser(ctx context.Context, u domain.User) error

	// UpdateRefreshToken overwrites only the refresh_token column. An empty
	// value clears it. This is the single write of the token issue path.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

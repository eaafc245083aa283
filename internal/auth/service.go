package auth

import (
	"context"

	validate "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/streamverse/vidtube/internal/config"
	"github.com/streamverse/vidtube/internal/domain"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/limiter"
	"github.com/streamverse/vidtube/internal/repo"
	"github.com/streamverse/vidtube/internal/token"
)

// Service owns the credential store and the token lifecycle: registration,
// login, stateless access checks, refresh rotation and revocation.
type Service interface {
	Register(ctx context.Context, d dto.RegisterDTO) (domain.PublicUser, error)
	Login(ctx context.Context, d dto.LoginDTO, ip string) (domain.PublicUser, domain.TokenPair, error)

	// Refresh verifies the presented refresh token against the value
	// persisted on the user and, on success, rotates both tokens. A
	// mismatch means the token was already rotated or revoked.
	Refresh(ctx context.Context, presented string) (domain.TokenPair, error)

	// ValidateAccess is a pure signature/expiry check, no storage access.
	ValidateAccess(tok string) (uuid.UUID, error)

	Logout(ctx context.Context, userID uuid.UUID) error

	CurrentUser(ctx context.Context, userID uuid.UUID) (domain.PublicUser, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, d dto.ChangePasswordDTO) error
	UpdateAccount(ctx context.Context, userID uuid.UUID, d dto.UpdateAccountDTO) (domain.PublicUser, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) (domain.PublicUser, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, url string) (domain.PublicUser, error)
}

func NewService(users repo.UserRepo, tokens token.Util, lim limiter.LoginLimiter, cfg *config.Config, v *validate.Validate) Service {
	return &service{
		users:  users,
		tokens: tokens,
		lim:    lim,
		cfg:    cfg,
		v:      v,
	}
}

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	validate "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/streamverse/vidtube/internal/apperr"
	"github.com/streamverse/vidtube/internal/config"
	"github.com/streamverse/vidtube/internal/domain"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/limiter"
	"github.com/streamverse/vidtube/internal/repo"
	"github.com/streamverse/vidtube/internal/token"
)

type service struct {
	users  repo.UserRepo
	tokens token.Util
	lim    limiter.LoginLimiter
	cfg    *config.Config
	v      *validate.Validate
}

func (s *service) Register(ctx context.Context, d dto.RegisterDTO) (domain.PublicUser, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.PublicUser{}, apperr.NewInvalidArgument(err.Error())
	}

	hash, err := argon2id.CreateHash(d.Password+s.cfg.PasswordPepper, argon2id.DefaultParams)
	if err != nil {
		return domain.PublicUser{}, apperr.WrapInternal(err, "Register")
	}

	user := domain.User{
		ID:           uuid.New(),
		Username:     strings.ToLower(d.Username),
		Email:        d.Email,
		FullName:     d.FullName,
		Avatar:       d.Avatar,
		CoverImage:   d.Cover,
		PasswordHash: hash,
	}

	if _, err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return domain.PublicUser{}, apperr.ErrAlreadyExists
		}
		return domain.PublicUser{}, apperr.WrapInternal(err, "Register")
	}

	created, err := s.users.GetUserByID(ctx, user.ID)
	if err != nil {
		return domain.PublicUser{}, apperr.WrapInternal(err, "Register")
	}
	return created.Public(), nil
}

func (s *service) Login(ctx context.Context, d dto.LoginDTO, ip string) (domain.PublicUser, domain.TokenPair, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, apperr.NewInvalidArgument(err.Error())
	}

	identifier := strings.ToLower(d.Username)
	if identifier == "" {
		identifier = d.Email
	}
	if identifier == "" {
		return domain.PublicUser{}, domain.TokenPair{}, apperr.NewInvalidArgument("username or email required")
	}

	if err := s.lim.Enforce(ctx, identifier, ip); err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, err
	}

	user, err := s.users.GetUserByLogin(ctx, identifier)
	if errors.Is(err, apperr.ErrNotFound) {
		return domain.PublicUser{}, domain.TokenPair{}, apperr.NewNotFound("user")
	}
	if err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, apperr.WrapInternal(err, "Login")
	}

	ok, err := argon2id.ComparePasswordAndHash(d.Password+s.cfg.PasswordPepper, user.PasswordHash)
	if err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, apperr.WrapInternal(err, "Login")
	}
	if !ok {
		return domain.PublicUser{}, domain.TokenPair{}, apperr.ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, err
	}

	_ = s.lim.Reset(ctx, identifier)

	return user.Public(), pair, nil
}

// issue generates a fresh pair and persists the refresh token onto the user
// record, invalidating whatever was stored before. Exactly one write.
func (s *service) issue(ctx context.Context, userID uuid.UUID) (domain.TokenPair, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return domain.TokenPair{}, apperr.ErrNotFound
		}
		return domain.TokenPair{}, apperr.WrapInternal(err, "issue")
	}

	access, accessExp, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return domain.TokenPair{}, apperr.WrapInternal(err, "issue")
	}
	refresh, refreshExp, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return domain.TokenPair{}, apperr.WrapInternal(err, "issue")
	}

	if err := s.users.UpdateRefreshToken(ctx, userID, refresh); err != nil {
		return domain.TokenPair{}, apperr.WrapInternal(err, "issue")
	}

	now := time.Now()
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessTTL:    accessExp.Sub(now),
		RefreshTTL:   refreshExp.Sub(now),
		UserID:       userID,
	}, nil
}

func (s *service) Refresh(ctx context.Context, presented string) (domain.TokenPair, error) {
	if presented == "" {
		return domain.TokenPair{}, apperr.ErrInvalidToken
	}

	claims, err := s.tokens.ValidateRefreshToken(presented)
	if err != nil {
		return domain.TokenPair{}, apperr.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.TokenPair{}, apperr.ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, uid)
	if err != nil {
		return domain.TokenPair{}, apperr.ErrInvalidToken
	}

	// The persisted value is the only valid refresh token. Anything else,
	// including a previously rotated one, counts as reuse.
	if user.RefreshToken == "" ||
		subtle.ConstantTimeCompare([]byte(presented), []byte(user.RefreshToken)) != 1 {
		return domain.TokenPair{}, apperr.ErrTokenReused
	}

	return s.issue(ctx, uid)
}

func (s *service) ValidateAccess(tok string) (uuid.UUID, error) {
	if tok == "" {
		return uuid.Nil, apperr.ErrInvalidToken
	}
	claims, err := s.tokens.ValidateAccessToken(tok)
	if err != nil {
		return uuid.Nil, apperr.ErrInvalidToken
	}
	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.ErrInvalidToken
	}
	return uid, nil
}

// Logout clears the persisted refresh token. Calling it twice leaves the
// same end state.
func (s *service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, ""); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrNotFound
		}
		return apperr.WrapInternal(err, "Logout")
	}
	return nil
}

func (s *service) CurrentUser(ctx context.Context, userID uuid.UUID) (domain.PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return domain.PublicUser{}, apperr.ErrNotFound
		}
		return domain.PublicUser{}, apperr.WrapInternal(err, "CurrentUser")
	}
	return user.Public(), nil
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, d dto.ChangePasswordDTO) error {
	if err := s.v.Struct(d); err != nil {
		return apperr.NewInvalidArgument(err.Error())
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := argon2id.ComparePasswordAndHash(d.OldPassword+s.cfg.PasswordPepper, user.PasswordHash)
	if err != nil {
		return apperr.WrapInternal(err, "ChangePassword")
	}
	if !ok {
		return apperr.ErrInvalidCredentials
	}

	hash, err := argon2id.CreateHash(d.NewPassword+s.cfg.PasswordPepper, argon2id.DefaultParams)
	if err != nil {
		return apperr.WrapInternal(err, "ChangePassword")
	}

	return s.users.UpdatePasswordHash(ctx, userID, hash)
}

func (s *service) UpdateAccount(ctx context.Context, userID uuid.UUID, d dto.UpdateAccountDTO) (domain.PublicUser, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.PublicUser{}, apperr.NewInvalidArgument(err.Error())
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}

	user.FullName = d.FullName
	user.Email = d.Email
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *service) UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) (domain.PublicUser, error) {
	return s.updateImage(ctx, userID, url, func(u *domain.User) { u.Avatar = url })
}

func (s *service) UpdateCoverImage(ctx context.Context, userID uuid.UUID, url string) (domain.PublicUser, error) {
	return s.updateImage(ctx, userID, url, func(u *domain.User) { u.CoverImage = url })
}

func (s *service) updateImage(ctx context.Context, userID uuid.UUID, url string, set func(*domain.User)) (domain.PublicUser, error) {
	if err := s.v.Struct(dto.UpdateImageDTO{URL: url}); err != nil {
		return domain.PublicUser{}, apperr.NewInvalidArgument(err.Error())
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}

	set(&user)
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}

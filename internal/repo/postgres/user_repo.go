package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	"github.com/streamverse/vidtube/internal/apperr"
	"github.com/streamverse/vidtube/internal/domain"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *UserRepo) CreateUser(ctx context.Context, u domain.User) (uuid.UUID, error) {
	res := r.db.WithContext(ctx).Create(&u)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, apperr.ErrAlreadyExists
		}
		return uuid.Nil, apperr.WrapInternal(err, "CreateUser")
	}
	return u.ID, nil
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUserBy(ctx, "email = ?", email)
}

func (r *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.getUserBy(ctx, "id = ?", id)
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUserBy(ctx, "username = ?", username)
}

func (r *UserRepo) GetUserByLogin(ctx context.Context, login string) (domain.User, error) {
	return r.getUserBy(ctx, "username = ? OR email = ?", login, login)
}

func (r *UserRepo) getUserBy(ctx context.Context, query string, args ...any) (domain.User, error) {
	var u domain.User
	res := r.db.WithContext(ctx).Where(query, args...).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return domain.User{}, apperr.ErrNotFound
	}
	if err := res.Error; err != nil {
		return domain.User{}, apperr.WrapInternal(err, "getUserBy")
	}
	return u, nil
}

func (r *UserRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res := r.db.WithContext(ctx).Save(&u)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrAlreadyExists
		}
		return apperr.WrapInternal(err, "UpdateUser")
	}
	return nil
}

// UpdateRefreshToken touches only the refresh_token column so the rest of
// the record is never re-validated or overwritten. Single atomic write.
func (r *UserRepo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "UpdateRefreshToken")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "UpdatePasswordHash")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

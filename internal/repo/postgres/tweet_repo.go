package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streamverse/vidtube/internal/apperr"
	"github.com/streamverse/vidtube/internal/domain"
	"github.com/streamverse/vidtube/internal/repo"
)

type TweetRepo struct {
	db *gorm.DB
}

func NewTweetRepo(db *gorm.DB) *TweetRepo {
	return &TweetRepo{db: db}
}

func (r *TweetRepo) CreateTweet(ctx context.Context, t domain.Tweet) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return uuid.Nil, apperr.WrapInternal(err, "CreateTweet")
	}
	return t.ID, nil
}

func (r *TweetRepo) GetTweetByID(ctx context.Context, id uuid.UUID) (domain.Tweet, error) {
	var t domain.Tweet
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&t)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return domain.Tweet{}, apperr.ErrNotFound
	}
	if err := res.Error; err != nil {
		return domain.Tweet{}, apperr.WrapInternal(err, "GetTweetByID")
	}
	return t, nil
}

func (r *TweetRepo) UpdateTweet(ctx context.Context, id uuid.UUID, content string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Tweet{}).
		Where("id = ?", id).
		Update("content", content)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "UpdateTweet")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *TweetRepo) DeleteTweet(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Tweet{}, "id = ?", id)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "DeleteTweet")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *TweetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (repo.Page[repo.TweetWithOwner], error) {
	return List[repo.TweetWithOwner](ctx, r.db, ListQuery{
		From: "tweets",
		Select: `tweets.id, tweets.content, tweets.created_at,
tweets.owner_id, users.username AS owner_username`,
		Joins: []Join{{Table: "users", LocalKey: "owner_id", ForeignKey: "id"}},
		Where: "tweets.owner_id = ?",
		Args:  []any{ownerID},
		Page:  page,
		Limit: limit,
	})
}

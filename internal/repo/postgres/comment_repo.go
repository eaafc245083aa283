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

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) CreateComment(ctx context.Context, c domain.Comment) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return uuid.Nil, apperr.WrapInternal(err, "CreateComment")
	}
	return c.ID, nil
}

func (r *CommentRepo) GetCommentByID(ctx context.Context, id uuid.UUID) (domain.Comment, error) {
	var c domain.Comment
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&c)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return domain.Comment{}, apperr.ErrNotFound
	}
	if err := res.Error; err != nil {
		return domain.Comment{}, apperr.WrapInternal(err, "GetCommentByID")
	}
	return c, nil
}

func (r *CommentRepo) UpdateComment(ctx context.Context, id uuid.UUID, content string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("id = ?", id).
		Update("content", content)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "UpdateComment")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *CommentRepo) DeleteComment(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "DeleteComment")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ListByVideo pages through a video's comments joined with their owners,
// oldest page boundaries stay stable because ordering is newest-first on the
// comment's creation time.
func (r *CommentRepo) ListByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) (repo.Page[repo.CommentWithOwner], error) {
	return List[repo.CommentWithOwner](ctx, r.db, ListQuery{
		From: "comments",
		Select: `comments.id, comments.content, comments.created_at,
comments.owner_id, users.username AS owner_username, users.avatar AS owner_avatar`,
		Joins: []Join{{Table: "users", LocalKey: "owner_id", ForeignKey: "id"}},
		Where: "comments.video_id = ?",
		Args:  []any{videoID},
		Page:  page,
		Limit: limit,
	})
}

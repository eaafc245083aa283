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

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db: db}
}

func (r *LikeRepo) ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	return r.toggle(ctx, "video_id", userID, videoID, func(l *domain.Like) { l.VideoID = &videoID })
}

func (r *LikeRepo) ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	return r.toggle(ctx, "comment_id", userID, commentID, func(l *domain.Like) { l.CommentID = &commentID })
}

func (r *LikeRepo) ToggleTweetLike(ctx context.Context, userID, tweetID uuid.UUID) (bool, error) {
	return r.toggle(ctx, "tweet_id", userID, tweetID, func(l *domain.Like) { l.TweetID = &tweetID })
}

func (r *LikeRepo) toggle(ctx context.Context, column string, userID, targetID uuid.UUID, set func(*domain.Like)) (bool, error) {
	var existing domain.Like
	res := r.db.WithContext(ctx).
		Where("liked_by_id = ? AND "+column+" = ?", userID, targetID).
		First(&existing)

	switch {
	case res.Error == nil:
		if err := r.db.WithContext(ctx).Delete(&domain.Like{}, "id = ?", existing.ID).Error; err != nil {
			return false, apperr.WrapInternal(err, "toggle delete")
		}
		return false, nil
	case errors.Is(res.Error, gorm.ErrRecordNotFound):
		like := domain.Like{ID: uuid.New(), LikedByID: userID}
		set(&like)
		if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
			return false, apperr.WrapInternal(err, "toggle create")
		}
		return true, nil
	default:
		return false, apperr.WrapInternal(res.Error, "toggle lookup")
	}
}

func (r *LikeRepo) ListLikedVideos(ctx context.Context, userID uuid.UUID, page, limit int) (repo.Page[repo.VideoWithOwner], error) {
	return List[repo.VideoWithOwner](ctx, r.db, ListQuery{
		From: "likes",
		Select: `videos.id, videos.title, videos.description, videos.video_file,
videos.thumbnail, videos.duration, videos.views, videos.owner_id,
users.username AS owner_username, users.avatar AS owner_avatar`,
		Joins: []Join{
			{Table: "videos", LocalKey: "video_id", ForeignKey: "id"},
			{Table: "users", On: "users.id = videos.owner_id"},
		},
		Where: "likes.liked_by_id = ? AND likes.video_id IS NOT NULL",
		Args:  []any{userID},
		Order: "likes.created_at DESC",
		Page:  page,
		Limit: limit,
	})
}

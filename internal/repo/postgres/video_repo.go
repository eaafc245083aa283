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

const videoWithOwnerSelect = `videos.id, videos.title, videos.description,
videos.video_file, videos.thumbnail, videos.duration, videos.views,
videos.owner_id, users.username AS owner_username, users.avatar AS owner_avatar`

type VideoRepo struct {
	db *gorm.DB
}

func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db: db}
}

func (r *VideoRepo) CreateVideo(ctx context.Context, v domain.Video) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return uuid.Nil, apperr.WrapInternal(err, "CreateVideo")
	}
	return v.ID, nil
}

func (r *VideoRepo) GetVideoByID(ctx context.Context, id uuid.UUID) (domain.Video, error) {
	var v domain.Video
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&v)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return domain.Video{}, apperr.ErrNotFound
	}
	if err := res.Error; err != nil {
		return domain.Video{}, apperr.WrapInternal(err, "GetVideoByID")
	}
	return v, nil
}

func (r *VideoRepo) GetVideoWithOwner(ctx context.Context, id uuid.UUID) (repo.VideoWithOwner, error) {
	var v repo.VideoWithOwner
	res := r.db.WithContext(ctx).
		Table("videos").
		Select(videoWithOwnerSelect).
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("videos.id = ?", id).
		Take(&v)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return repo.VideoWithOwner{}, apperr.ErrNotFound
	}
	if err := res.Error; err != nil {
		return repo.VideoWithOwner{}, apperr.WrapInternal(err, "GetVideoWithOwner")
	}
	return v, nil
}

func (r *VideoRepo) UpdateVideo(ctx context.Context, v domain.Video) error {
	res := r.db.WithContext(ctx).Save(&v)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "UpdateVideo")
	}
	return nil
}

func (r *VideoRepo) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Video{}, "id = ?", id)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "DeleteVideo")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *VideoRepo) ListVideos(ctx context.Context, f repo.VideoListFilter) (repo.Page[repo.VideoWithOwner], error) {
	where := "videos.is_published = ?"
	args := []any{true}

	if f.Query != "" {
		where += " AND LOWER(videos.title) LIKE LOWER(?)"
		args = append(args, "%"+f.Query+"%")
	}
	if f.OwnerID != uuid.Nil {
		where += " AND videos.owner_id = ?"
		args = append(args, f.OwnerID)
	}

	order := "videos.created_at DESC"
	switch f.SortBy {
	case "views", "duration", "created_at":
		dir := "ASC"
		if f.SortDesc {
			dir = "DESC"
		}
		order = "videos." + f.SortBy + " " + dir
	}

	return List[repo.VideoWithOwner](ctx, r.db, ListQuery{
		From:   "videos",
		Select: videoWithOwnerSelect,
		Joins:  []Join{{Table: "users", LocalKey: "owner_id", ForeignKey: "id"}},
		Where:  where,
		Args:   args,
		Order:  order,
		Page:   f.Page,
		Limit:  f.Limit,
	})
}

func (r *VideoRepo) AddView(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1"))
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "AddView")
	}
	return nil
}

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

type PlaylistRepo struct {
	db *gorm.DB
}

func NewPlaylistRepo(db *gorm.DB) *PlaylistRepo {
	return &PlaylistRepo{db: db}
}

func (r *PlaylistRepo) CreatePlaylist(ctx context.Context, p domain.Playlist) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return uuid.Nil, apperr.WrapInternal(err, "CreatePlaylist")
	}
	return p.ID, nil
}

func (r *PlaylistRepo) GetPlaylistByID(ctx context.Context, id uuid.UUID) (domain.Playlist, error) {
	var p domain.Playlist
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&p)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return domain.Playlist{}, apperr.ErrNotFound
	}
	if err := res.Error; err != nil {
		return domain.Playlist{}, apperr.WrapInternal(err, "GetPlaylistByID")
	}
	return p, nil
}

func (r *PlaylistRepo) UpdatePlaylist(ctx context.Context, p domain.Playlist) error {
	res := r.db.WithContext(ctx).Save(&p)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "UpdatePlaylist")
	}
	return nil
}

func (r *PlaylistRepo) DeletePlaylist(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&domain.PlaylistVideo{}, "playlist_id = ?", id).Error; err != nil {
		return apperr.WrapInternal(err, "DeletePlaylist members")
	}
	res := r.db.WithContext(ctx).Delete(&domain.Playlist{}, "id = ?", id)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "DeletePlaylist")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *PlaylistRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (repo.Page[domain.Playlist], error) {
	return List[domain.Playlist](ctx, r.db, ListQuery{
		From:   "playlists",
		Select: "playlists.*",
		Where:  "playlists.owner_id = ?",
		Args:   []any{ownerID},
		Page:   page,
		Limit:  limit,
	})
}

func (r *PlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	pv := domain.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	err := r.db.WithContext(ctx).Create(&pv).Error
	if err != nil {
		if isUniqueViolation(err) {
			// already a member, adding again is a no-op
			return nil
		}
		return apperr.WrapInternal(err, "AddVideo")
	}
	return nil
}

func (r *PlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&domain.PlaylistVideo{}, "playlist_id = ? AND video_id = ?", playlistID, videoID)
	if err := res.Error; err != nil {
		return apperr.WrapInternal(err, "RemoveVideo")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *PlaylistRepo) ListVideos(ctx context.Context, playlistID uuid.UUID) ([]domain.Video, error) {
	videos := make([]domain.Video, 0)
	err := r.db.WithContext(ctx).
		Table("videos").
		Select("videos.*").
		Joins("JOIN playlist_videos ON playlist_videos.video_id = videos.id").
		Where("playlist_videos.playlist_id = ?", playlistID).
		Order("playlist_videos.created_at ASC").
		Scan(&videos).Error
	if err != nil {
		return nil, apperr.WrapInternal(err, "ListVideos")
	}
	return videos, nil
}

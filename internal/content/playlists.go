package content

import (
	"context"

	validate "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/streamverse/vidtube/internal/apperr"
	"github.com/streamverse/vidtube/internal/domain"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/repo"
)

type playlistService struct {
	playlists repo.PlaylistRepo
	videos    repo.VideoRepo
	v         *validate.Validate
}

func (s *playlistService) Create(ctx context.Context, ownerID uuid.UUID, d dto.PlaylistDTO) (domain.Playlist, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.Playlist{}, apperr.NewInvalidArgument(err.Error())
	}

	playlist := domain.Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        d.Name,
		Description: d.Description,
	}
	if _, err := s.playlists.CreatePlaylist(ctx, playlist); err != nil {
		return domain.Playlist{}, err
	}
	return playlist, nil
}

func (s *playlistService) Get(ctx context.Context, id uuid.UUID) (domain.Playlist, []domain.Video, error) {
	playlist, err := s.playlists.GetPlaylistByID(ctx, id)
	if err != nil {
		return domain.Playlist{}, nil, err
	}
	videos, err := s.playlists.ListVideos(ctx, id)
	if err != nil {
		return domain.Playlist{}, nil, err
	}
	return playlist, videos, nil
}

func (s *playlistService) Update(ctx context.Context, callerID, id uuid.UUID, d dto.PlaylistDTO) (domain.Playlist, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.Playlist{}, apperr.NewInvalidArgument(err.Error())
	}

	playlist, err := s.ownedPlaylist(ctx, callerID, id)
	if err != nil {
		return domain.Playlist{}, err
	}

	playlist.Name = d.Name
	playlist.Description = d.Description
	if err := s.playlists.UpdatePlaylist(ctx, playlist); err != nil {
		return domain.Playlist{}, err
	}
	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if _, err := s.ownedPlaylist(ctx, callerID, id); err != nil {
		return err
	}
	return s.playlists.DeletePlaylist(ctx, id)
}

func (s *playlistService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) (repo.Page[domain.Playlist], error) {
	return s.playlists.ListByOwner(ctx, userID, page, limit)
}

func (s *playlistService) AddVideo(ctx context.Context, callerID, playlistID, videoID uuid.UUID) error {
	if _, err := s.ownedPlaylist(ctx, callerID, playlistID); err != nil {
		return err
	}
	if _, err := s.videos.GetVideoByID(ctx, videoID); err != nil {
		return err
	}
	return s.playlists.AddVideo(ctx, playlistID, videoID)
}

func (s *playlistService) RemoveVideo(ctx context.Context, callerID, playlistID, videoID uuid.UUID) error {
	if _, err := s.ownedPlaylist(ctx, callerID, playlistID); err != nil {
		return err
	}
	return s.playlists.RemoveVideo(ctx, playlistID, videoID)
}

func (s *playlistService) ownedPlaylist(ctx context.Context, callerID, id uuid.UUID) (domain.Playlist, error) {
	playlist, err := s.playlists.GetPlaylistByID(ctx, id)
	if err != nil {
		return domain.Playlist{}, err
	}
	if playlist.OwnerID != callerID {
		return domain.Playlist{}, apperr.ErrInvalidCredentials
	}
	return playlist, nil
}

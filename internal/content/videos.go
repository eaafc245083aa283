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

type videoService struct {
	videos repo.VideoRepo
	v      *validate.Validate
}

func (s *videoService) Publish(ctx context.Context, ownerID uuid.UUID, d dto.PublishVideoDTO) (domain.Video, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.Video{}, apperr.NewInvalidArgument(err.Error())
	}

	video := domain.Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       d.Title,
		Description: d.Description,
		VideoFile:   d.VideoFile,
		Thumbnail:   d.Thumbnail,
		Duration:    d.Duration,
		IsPublished: true,
	}
	if _, err := s.videos.CreateVideo(ctx, video); err != nil {
		return domain.Video{}, err
	}
	return video, nil
}

func (s *videoService) Get(ctx context.Context, id uuid.UUID) (repo.VideoWithOwner, error) {
	video, err := s.videos.GetVideoWithOwner(ctx, id)
	if err != nil {
		return repo.VideoWithOwner{}, err
	}
	// views are best-effort, a lost increment is acceptable
	_ = s.videos.AddView(ctx, id)
	return video, nil
}

func (s *videoService) Update(ctx context.Context, callerID, id uuid.UUID, d dto.UpdateVideoDTO) (domain.Video, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.Video{}, apperr.NewInvalidArgument(err.Error())
	}

	video, err := s.ownedVideo(ctx, callerID, id)
	if err != nil {
		return domain.Video{}, err
	}

	video.Title = d.Title
	video.Description = d.Description
	if d.Thumbnail != "" {
		video.Thumbnail = d.Thumbnail
	}
	if err := s.videos.UpdateVideo(ctx, video); err != nil {
		return domain.Video{}, err
	}
	return video, nil
}

func (s *videoService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if _, err := s.ownedVideo(ctx, callerID, id); err != nil {
		return err
	}
	return s.videos.DeleteVideo(ctx, id)
}

func (s *videoService) TogglePublish(ctx context.Context, callerID, id uuid.UUID) (domain.Video, error) {
	video, err := s.ownedVideo(ctx, callerID, id)
	if err != nil {
		return domain.Video{}, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videos.UpdateVideo(ctx, video); err != nil {
		return domain.Video{}, err
	}
	return video, nil
}

func (s *videoService) List(ctx context.Context, d dto.ListVideosDTO) (repo.Page[repo.VideoWithOwner], error) {
	filter := repo.VideoListFilter{
		Query:    d.Query,
		SortBy:   d.SortBy,
		SortDesc: d.SortType != "asc",
		Page:     d.Page,
		Limit:    d.Limit,
	}
	if d.UserID != "" {
		ownerID, err := uuid.Parse(d.UserID)
		if err != nil {
			return repo.Page[repo.VideoWithOwner]{}, apperr.NewInvalidArgument("invalid user id")
		}
		filter.OwnerID = ownerID
	}
	return s.videos.ListVideos(ctx, filter)
}

func (s *videoService) ownedVideo(ctx context.Context, callerID, id uuid.UUID) (domain.Video, error) {
	video, err := s.videos.GetVideoByID(ctx, id)
	if err != nil {
		return domain.Video{}, err
	}
	if video.OwnerID != callerID {
		return domain.Video{}, apperr.ErrInvalidCredentials
	}
	return video, nil
}

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

type commentService struct {
	comments repo.CommentRepo
	videos   repo.VideoRepo
	v        *validate.Validate
}

func (s *commentService) Add(ctx context.Context, ownerID, videoID uuid.UUID, d dto.ContentDTO) (domain.Comment, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.Comment{}, apperr.NewInvalidArgument(err.Error())
	}
	if _, err := s.videos.GetVideoByID(ctx, videoID); err != nil {
		return domain.Comment{}, err
	}

	comment := domain.Comment{
		ID:      uuid.New(),
		VideoID: videoID,
		OwnerID: ownerID,
		Content: d.Content,
	}
	if _, err := s.comments.CreateComment(ctx, comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, callerID, id uuid.UUID, d dto.ContentDTO) (domain.Comment, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.Comment{}, apperr.NewInvalidArgument(err.Error())
	}

	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	if comment.OwnerID != callerID {
		return domain.Comment{}, apperr.ErrInvalidCredentials
	}

	if err := s.comments.UpdateComment(ctx, id, d.Content); err != nil {
		return domain.Comment{}, err
	}
	comment.Content = d.Content
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.OwnerID != callerID {
		return apperr.ErrInvalidCredentials
	}
	return s.comments.DeleteComment(ctx, id)
}

// ListByVideo returns one page of a video's comments with their owners. A
// missing video is NotFound; a video without comments is an empty page with
// total zero.
func (s *commentService) ListByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) (repo.Page[repo.CommentWithOwner], error) {
	if _, err := s.videos.GetVideoByID(ctx, videoID); err != nil {
		return repo.Page[repo.CommentWithOwner]{}, err
	}
	return s.comments.ListByVideo(ctx, videoID, page, limit)
}

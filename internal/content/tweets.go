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

type tweetService struct {
	tweets repo.TweetRepo
	v      *validate.Validate
}

func (s *tweetService) Create(ctx context.Context, ownerID uuid.UUID, d dto.ContentDTO) (domain.Tweet, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.Tweet{}, apperr.NewInvalidArgument(err.Error())
	}

	tweet := domain.Tweet{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Content: d.Content,
	}
	if _, err := s.tweets.CreateTweet(ctx, tweet); err != nil {
		return domain.Tweet{}, err
	}
	return tweet, nil
}

func (s *tweetService) Update(ctx context.Context, callerID, id uuid.UUID, d dto.ContentDTO) (domain.Tweet, error) {
	if err := s.v.Struct(d); err != nil {
		return domain.Tweet{}, apperr.NewInvalidArgument(err.Error())
	}

	tweet, err := s.tweets.GetTweetByID(ctx, id)
	if err != nil {
		return domain.Tweet{}, err
	}
	if tweet.OwnerID != callerID {
		return domain.Tweet{}, apperr.ErrInvalidCredentials
	}

	if err := s.tweets.UpdateTweet(ctx, id, d.Content); err != nil {
		return domain.Tweet{}, err
	}
	tweet.Content = d.Content
	return tweet, nil
}

func (s *tweetService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	tweet, err := s.tweets.GetTweetByID(ctx, id)
	if err != nil {
		return err
	}
	if tweet.OwnerID != callerID {
		return apperr.ErrInvalidCredentials
	}
	return s.tweets.DeleteTweet(ctx, id)
}

func (s *tweetService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) (repo.Page[repo.TweetWithOwner], error) {
	return s.tweets.ListByOwner(ctx, userID, page, limit)
}

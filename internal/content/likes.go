package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/streamverse/vidtube/internal/repo"
)

type likeService struct {
	likes    repo.LikeRepo
	videos   repo.VideoRepo
	comments repo.CommentRepo
	tweets   repo.TweetRepo
}

func (s *likeService) ToggleVideo(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	if _, err := s.videos.GetVideoByID(ctx, videoID); err != nil {
		return false, err
	}
	return s.likes.ToggleVideoLike(ctx, userID, videoID)
}

func (s *likeService) ToggleComment(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	if _, err := s.comments.GetCommentByID(ctx, commentID); err != nil {
		return false, err
	}
	return s.likes.ToggleCommentLike(ctx, userID, commentID)
}

func (s *likeService) ToggleTweet(ctx context.Context, userID, tweetID uuid.UUID) (bool, error) {
	if _, err := s.tweets.GetTweetByID(ctx, tweetID); err != nil {
		return false, err
	}
	return s.likes.ToggleTweetLike(ctx, userID, tweetID)
}

func (s *likeService) LikedVideos(ctx context.Context, userID uuid.UUID, page, limit int) (repo.Page[repo.VideoWithOwner], error) {
	return s.likes.ListLikedVideos(ctx, userID, page, limit)
}

// Package content implements the video, comment, tweet, playlist and like
// operations on top of the repositories. Ownership checks live here: a
// caller may only mutate entities it owns.
package content

import (
	"context"

	validate "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/streamverse/vidtube/internal/domain"
	"github.com/streamverse/vidtube/internal/dto"
	"github.com/streamverse/vidtube/internal/repo"
)

type VideoService interface {
	Publish(ctx context.Context, ownerID uuid.UUID, d dto.PublishVideoDTO) (domain.Video, error)
	Get(ctx context.Context, id uuid.UUID) (repo.VideoWithOwner, error)
	Update(ctx context.Context, callerID, id uuid.UUID, d dto.UpdateVideoDTO) (domain.Video, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
	TogglePublish(ctx context.Context, callerID, id uuid.UUID) (domain.Video, error)
	List(ctx context.Context, d dto.ListVideosDTO) (repo.Page[repo.VideoWithOwner], error)
}

type CommentService interface {
	Add(ctx context.Context, ownerID, videoID uuid.UUID, d dto.ContentDTO) (domain.Comment, error)
	Update(ctx context.Context, callerID, id uuid.UUID, d dto.ContentDTO) (domain.Comment, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
	ListByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) (repo.Page[repo.CommentWithOwner], error)
}

type TweetService interface {
	Create(ctx context.Context, ownerID uuid.UUID, d dto.ContentDTO) (domain.Tweet, error)
	Update(ctx context.Context, callerID, id uuid.UUID, d dto.ContentDTO) (domain.Tweet, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) (repo.Page[repo.TweetWithOwner], error)
}

type PlaylistService interface {
	Create(ctx context.Context, ownerID uuid.UUID, d dto.PlaylistDTO) (domain.Playlist, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Playlist, []domain.Video, error)
	Update(ctx context.Context, callerID, id uuid.UUID, d dto.PlaylistDTO) (domain.Playlist, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) (repo.Page[domain.Playlist], error)
	AddVideo(ctx context.Context, callerID, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, callerID, playlistID, videoID uuid.UUID) error
}

type LikeService interface {
	ToggleVideo(ctx context.Context, userID, videoID uuid.UUID) (bool, error)
	ToggleComment(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
	ToggleTweet(ctx context.Context, userID, tweetID uuid.UUID) (bool, error)
	LikedVideos(ctx context.Context, userID uuid.UUID, page, limit int) (repo.Page[repo.VideoWithOwner], error)
}

type Services struct {
	Videos    VideoService
	Comments  CommentService
	Tweets    TweetService
	Playlists PlaylistService
	Likes     LikeService
}

func NewServices(videos repo.VideoRepo, comments repo.CommentRepo, tweets repo.TweetRepo,
	playlists repo.PlaylistRepo, likes repo.LikeRepo, v *validate.Validate) Services {
	return Services{
		Videos:    &videoService{videos: videos, v: v},
		Comments:  &commentService{comments: comments, videos: videos, v: v},
		Tweets:    &tweetService{tweets: tweets, v: v},
		Playlists: &playlistService{playlists: playlists, videos: videos, v: v},
		Likes:     &likeService{likes: likes, videos: videos, comments: comments, tweets: tweets},
	}
}

package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streamverse/vidtube/internal/domain"
)

// Page is one slice of a larger filtered set. Total is the count of all
// matching rows, independent of the requested page.
type Page[T any] struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Items []T   `json:"items"`
}

type CommentWithOwner struct {
	ID            uuid.UUID `json:"id" gorm:"column:id"`
	Content       string    `json:"content" gorm:"column:content"`
	CreatedAt     time.Time `json:"createdAt" gorm:"column:created_at"`
	OwnerID       uuid.UUID `json:"ownerId" gorm:"column:owner_id"`
	OwnerUsername string    `json:"ownerUsername" gorm:"column:owner_username"`
	OwnerAvatar   string    `json:"ownerAvatar" gorm:"column:owner_avatar"`
}

type TweetWithOwner struct {
	ID            uuid.UUID `json:"id" gorm:"column:id"`
	Content       string    `json:"content" gorm:"column:content"`
	CreatedAt     time.Time `json:"createdAt" gorm:"column:created_at"`
	OwnerID       uuid.UUID `json:"ownerId" gorm:"column:owner_id"`
	OwnerUsername string    `json:"ownerUsername" gorm:"column:owner_username"`
}

type VideoWithOwner struct {
	ID            uuid.UUID `json:"id" gorm:"column:id"`
	Title         string    `json:"title" gorm:"column:title"`
	Description   string    `json:"description" gorm:"column:description"`
	VideoFile     string    `json:"videoFile" gorm:"column:video_file"`
	Thumbnail     string    `json:"thumbnail" gorm:"column:thumbnail"`
	Duration      float64   `json:"duration" gorm:"column:duration"`
	Views         int64     `json:"views" gorm:"column:views"`
	OwnerID       uuid.UUID `json:"ownerId" gorm:"column:owner_id"`
	OwnerUsername string    `json:"ownerUsername" gorm:"column:owner_username"`
	OwnerAvatar   string    `json:"ownerAvatar" gorm:"column:owner_avatar"`
}

type VideoListFilter struct {
	Query    string
	OwnerID  uuid.UUID // zero value means any owner
	SortBy   string    // created_at, views, duration
	SortDesc bool
	Page     int
	Limit    int
}

type VideoRepo interface {
	CreateVideo(ctx context.Context, v domain.Video) (uuid.UUID, error)
	GetVideoByID(ctx context.Context, id uuid.UUID) (domain.Video, error)
	GetVideoWithOwner(ctx context.Context, id uuid.UUID) (VideoWithOwner, error)
	UpdateVideo(ctx context.Context, v domain.Video) error
	DeleteVideo(ctx context.Context, id uuid.UUID) error
	ListVideos(ctx context.Context, f VideoListFilter) (Page[VideoWithOwner], error)
	AddView(ctx context.Context, id uuid.UUID) error
}

type CommentRepo interface {
	CreateComment(ctx context.Context, c domain.Comment) (uuid.UUID, error)
	GetCommentByID(ctx context.Context, id uuid.UUID) (domain.Comment, error)
	UpdateComment(ctx context.Context, id uuid.UUID, content string) error
	DeleteComment(ctx context.Context, id uuid.UUID) error
	ListByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) (Page[CommentWithOwner], error)
}

type TweetRepo interface {
	CreateTweet(ctx context.Context, t domain.Tweet) (uuid.UUID, error)
	GetTweetByID(ctx context.Context, id uuid.UUID) (domain.Tweet, error)
	UpdateTweet(ctx context.Context, id uuid.UUID, content string) error
	DeleteTweet(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (Page[TweetWithOwner], error)
}

type PlaylistRepo interface {
	CreatePlaylist(ctx context.Context, p domain.Playlist) (uuid.UUID, error)
	GetPlaylistByID(ctx context.Context, id uuid.UUID) (domain.Playlist, error)
	UpdatePlaylist(ctx context.Context, p domain.Playlist) error
	DeletePlaylist(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (Page[domain.Playlist], error)
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	ListVideos(ctx context.Context, playlistID uuid.UUID) ([]domain.Video, error)
}

type LikeRepo interface {
	// ToggleVideoLike removes an existing like and reports liked=false, or
	// inserts one and reports liked=true.
	ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (liked bool, err error)
	ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (liked bool, err error)
	ToggleTweetLike(ctx context.Context, userID, tweetID uuid.UUID) (liked bool, err error)
	ListLikedVideos(ctx context.Context, userID uuid.UUID, page, limit int) (Page[VideoWithOwner], error)
}

package content

import (
	"context"
	"testing"

	validate "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/streamverse/vidtube/internal/apperr"
	"github.com/streamverse/vidtube/internal/domain"
	"github.com/streamverse/vidtube/internal/dto"
	pgrepo "github.com/streamverse/vidtube/internal/repo/postgres"
)

func newTestServices(t *testing.T) (Services, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Video{}, &domain.Comment{},
		&domain.Tweet{}, &domain.Playlist{}, &domain.PlaylistVideo{}, &domain.Like{},
	))

	svcs := NewServices(
		pgrepo.NewVideoRepo(db),
		pgrepo.NewCommentRepo(db),
		pgrepo.NewTweetRepo(db),
		pgrepo.NewPlaylistRepo(db),
		pgrepo.NewLikeRepo(db),
		validate.New(),
	)
	return svcs, db
}

func newUser(t *testing.T, db *gorm.DB, username string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func publish(t *testing.T, svcs Services, ownerID uuid.UUID, title string) domain.Video {
	t.Helper()
	v, err := svcs.Videos.Publish(context.Background(), ownerID, dto.PublishVideoDTO{
		Title:       title,
		Description: "desc",
		VideoFile:   "https://cdn.example.com/v.mp4",
		Thumbnail:   "https://cdn.example.com/t.jpg",
		Duration:    42,
	})
	require.NoError(t, err)
	return v
}

func TestPublishValidatesInput(t *testing.T) {
	svcs, db := newTestServices(t)
	u := newUser(t, db, "alice")

	_, err := svcs.Videos.Publish(context.Background(), u.ID, dto.PublishVideoDTO{Title: ""})
	require.True(t, apperr.IsInvalidArgument(err))
}

func TestVideoUpdateRequiresOwnership(t *testing.T) {
	svcs, db := newTestServices(t)
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	v := publish(t, svcs, alice.ID, "mine")

	_, err := svcs.Videos.Update(context.Background(), bob.ID, v.ID, dto.UpdateVideoDTO{
		Title: "stolen", Description: "nope",
	})
	require.True(t, apperr.IsInvalidCredentials(err))

	updated, err := svcs.Videos.Update(context.Background(), alice.ID, v.ID, dto.UpdateVideoDTO{
		Title: "renamed", Description: "better",
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Title)
}

func TestVideoGetCountsView(t *testing.T) {
	svcs, db := newTestServices(t)
	alice := newUser(t, db, "alice")
	v := publish(t, svcs, alice.ID, "watched")

	ctx := context.Background()
	_, err := svcs.Videos.Get(ctx, v.ID)
	require.NoError(t, err)
	got, err := svcs.Videos.Get(ctx, v.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Views)
}

func TestTogglePublishFlips(t *testing.T) {
	svcs, db := newTestServices(t)
	alice := newUser(t, db, "alice")
	v := publish(t, svcs, alice.ID, "toggle me")

	ctx := context.Background()
	toggled, err := svcs.Videos.TogglePublish(ctx, alice.ID, v.ID)
	require.NoError(t, err)
	require.False(t, toggled.IsPublished)

	// unpublished videos drop out of the public listing
	page, err := svcs.Videos.List(ctx, dto.ListVideosDTO{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 0, page.Total)

	toggled, err = svcs.Videos.TogglePublish(ctx, alice.ID, v.ID)
	require.NoError(t, err)
	require.True(t, toggled.IsPublished)
}

func TestCommentOnMissingVideo(t *testing.T) {
	svcs, db := newTestServices(t)
	alice := newUser(t, db, "alice")

	_, err := svcs.Comments.Add(context.Background(), alice.ID, uuid.New(), dto.ContentDTO{Content: "hi"})
	require.True(t, apperr.IsNotFound(err))

	_, err = svcs.Comments.ListByVideo(context.Background(), uuid.New(), 1, 10)
	require.True(t, apperr.IsNotFound(err))
}

func TestCommentLifecycle(t *testing.T) {
	svcs, db := newTestServices(t)
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	v := publish(t, svcs, alice.ID, "commented")
	ctx := context.Background()

	c, err := svcs.Comments.Add(ctx, bob.ID, v.ID, dto.ContentDTO{Content: "nice"})
	require.NoError(t, err)

	_, err = svcs.Comments.Update(ctx, alice.ID, c.ID, dto.ContentDTO{Content: "mine now"})
	require.True(t, apperr.IsInvalidCredentials(err))

	updated, err := svcs.Comments.Update(ctx, bob.ID, c.ID, dto.ContentDTO{Content: "edited"})
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Content)

	require.True(t, apperr.IsInvalidCredentials(svcs.Comments.Delete(ctx, alice.ID, c.ID)))
	require.NoError(t, svcs.Comments.Delete(ctx, bob.ID, c.ID))
	require.True(t, apperr.IsNotFound(svcs.Comments.Delete(ctx, bob.ID, c.ID)))
}

func TestTweetLifecycle(t *testing.T) {
	svcs, db := newTestServices(t)
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	ctx := context.Background()

	tw, err := svcs.Tweets.Create(ctx, alice.ID, dto.ContentDTO{Content: "hello"})
	require.NoError(t, err)

	_, err = svcs.Tweets.Update(ctx, bob.ID, tw.ID, dto.ContentDTO{Content: "hijack"})
	require.True(t, apperr.IsInvalidCredentials(err))

	page, err := svcs.Tweets.ListByUser(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, "alice", page.Items[0].OwnerUsername)

	require.NoError(t, svcs.Tweets.Delete(ctx, alice.ID, tw.ID))
}

func TestPlaylistLifecycle(t *testing.T) {
	svcs, db := newTestServices(t)
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	v := publish(t, svcs, alice.ID, "playlisted")
	ctx := context.Background()

	p, err := svcs.Playlists.Create(ctx, alice.ID, dto.PlaylistDTO{Name: "watch later", Description: "queue"})
	require.NoError(t, err)

	require.True(t, apperr.IsInvalidCredentials(svcs.Playlists.AddVideo(ctx, bob.ID, p.ID, v.ID)))
	require.NoError(t, svcs.Playlists.AddVideo(ctx, alice.ID, p.ID, v.ID))
	require.True(t, apperr.IsNotFound(svcs.Playlists.AddVideo(ctx, alice.ID, p.ID, uuid.New())))

	got, videos, err := svcs.Playlists.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
	require.Len(t, videos, 1)

	require.NoError(t, svcs.Playlists.RemoveVideo(ctx, alice.ID, p.ID, v.ID))
	require.NoError(t, svcs.Playlists.Delete(ctx, alice.ID, p.ID))
	_, _, err = svcs.Playlists.Get(ctx, p.ID)
	require.True(t, apperr.IsNotFound(err))
}

func TestLikeToggleRequiresTarget(t *testing.T) {
	svcs, db := newTestServices(t)
	alice := newUser(t, db, "alice")

	_, err := svcs.Likes.ToggleVideo(context.Background(), alice.ID, uuid.New())
	require.True(t, apperr.IsNotFound(err))
}

func TestLikeToggleAndList(t *testing.T) {
	svcs, db := newTestServices(t)
	alice := newUser(t, db, "alice")
	bob := newUser(t, db, "bob")
	v := publish(t, svcs, bob.ID, "likable")
	ctx := context.Background()

	liked, err := svcs.Likes.ToggleVideo(ctx, alice.ID, v.ID)
	require.NoError(t, err)
	require.True(t, liked)

	page, err := svcs.Likes.LikedVideos(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, v.ID, page.Items[0].ID)

	liked, err = svcs.Likes.ToggleVideo(ctx, alice.ID, v.ID)
	require.NoError(t, err)
	require.False(t, liked)

	page, err = svcs.Likes.LikedVideos(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 0, page.Total)
}

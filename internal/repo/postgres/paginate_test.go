package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/streamverse/vidtube/internal/domain"
	"github.com/streamverse/vidtube/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Video{}, &domain.Comment{},
		&domain.Tweet{}, &domain.Playlist{}, &domain.PlaylistVideo{}, &domain.Like{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) domain.User {
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

func seedVideo(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) domain.Video {
	t.Helper()
	v := domain.Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func seedComments(t *testing.T, db *gorm.DB, videoID, ownerID uuid.UUID, n int) {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		c := domain.Comment{
			ID:        uuid.New(),
			VideoID:   videoID,
			OwnerID:   ownerID,
			Content:   fmt.Sprintf("comment %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&c).Error)
	}
}

func TestListSecondPageIsPartial(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice")
	v := seedVideo(t, db, u.ID, "first")
	seedComments(t, db, v.ID, u.ID, 15)

	comments := NewCommentRepo(db)
	page, err := comments.ListByVideo(context.Background(), v.ID, 2, 10)
	require.NoError(t, err)

	require.EqualValues(t, 15, page.Total)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 10, page.Limit)
	require.Len(t, page.Items, 5)
	require.Equal(t, "alice", page.Items[0].OwnerUsername)
}

func TestListEmptySet(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice")
	v := seedVideo(t, db, u.ID, "first")

	comments := NewCommentRepo(db)
	page, err := comments.ListByVideo(context.Background(), v.ID, 1, 10)
	require.NoError(t, err)

	require.EqualValues(t, 0, page.Total)
	require.Empty(t, page.Items)
}

func TestListClampsPageAndLimit(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice")
	v := seedVideo(t, db, u.ID, "first")
	seedComments(t, db, v.ID, u.ID, 3)

	comments := NewCommentRepo(db)
	page, err := comments.ListByVideo(context.Background(), v.ID, -4, 0)
	require.NoError(t, err)

	require.Equal(t, 1, page.Page)
	require.Equal(t, 1, page.Limit)
	require.EqualValues(t, 3, page.Total)
	require.Len(t, page.Items, 1)
}

func TestListPagesConcatenateToFullSet(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice")
	v := seedVideo(t, db, u.ID, "first")
	seedComments(t, db, v.ID, u.ID, 15)

	comments := NewCommentRepo(db)
	seen := map[uuid.UUID]bool{}
	for p := 1; p <= 3; p++ {
		page, err := comments.ListByVideo(context.Background(), v.ID, p, 5)
		require.NoError(t, err)
		require.EqualValues(t, 15, page.Total)
		for _, item := range page.Items {
			require.False(t, seen[item.ID], "item %s repeated across pages", item.ID)
			seen[item.ID] = true
		}
	}
	require.Len(t, seen, 15)
}

func TestListOutOfRangePage(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice")
	v := seedVideo(t, db, u.ID, "first")
	seedComments(t, db, v.ID, u.ID, 4)

	comments := NewCommentRepo(db)
	page, err := comments.ListByVideo(context.Background(), v.ID, 9, 10)
	require.NoError(t, err)

	require.EqualValues(t, 4, page.Total)
	require.Empty(t, page.Items)
}

func TestListFiltersBeforeCounting(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice")
	first := seedVideo(t, db, u.ID, "first")
	second := seedVideo(t, db, u.ID, "second")
	seedComments(t, db, first.ID, u.ID, 7)
	seedComments(t, db, second.ID, u.ID, 2)

	comments := NewCommentRepo(db)
	page, err := comments.ListByVideo(context.Background(), first.ID, 1, 10)
	require.NoError(t, err)

	require.EqualValues(t, 7, page.Total)
	require.Len(t, page.Items, 7)
}

func TestListVideosFilterAndSort(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedVideo(t, db, alice.ID, "Go concurrency patterns")
	seedVideo(t, db, alice.ID, "Cooking pasta")
	seedVideo(t, db, bob.ID, "Go generics deep dive")

	videos := NewVideoRepo(db)

	page, err := videos.ListVideos(context.Background(), repo.VideoListFilter{Query: "go", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)

	page, err = videos.ListVideos(context.Background(), repo.VideoListFilter{OwnerID: bob.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, "bob", page.Items[0].OwnerUsername)
}

func TestLikedVideosJoinChain(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	v1 := seedVideo(t, db, bob.ID, "first")
	v2 := seedVideo(t, db, bob.ID, "second")
	seedVideo(t, db, bob.ID, "unliked")

	likes := NewLikeRepo(db)
	ctx := context.Background()

	liked, err := likes.ToggleVideoLike(ctx, alice.ID, v1.ID)
	require.NoError(t, err)
	require.True(t, liked)
	liked, err = likes.ToggleVideoLike(ctx, alice.ID, v2.ID)
	require.NoError(t, err)
	require.True(t, liked)

	page, err := likes.ListLikedVideos(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	for _, item := range page.Items {
		require.Equal(t, "bob", item.OwnerUsername)
	}

	// a second toggle removes the like
	liked, err = likes.ToggleVideoLike(ctx, alice.ID, v1.ID)
	require.NoError(t, err)
	require.False(t, liked)

	page, err = likes.ListLikedVideos(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, v2.ID, page.Items[0].ID)
}

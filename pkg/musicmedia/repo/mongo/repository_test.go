package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tunehub/musician-media/pkg/musicmedia"
)

// setupTestRepository connects to the Mongo instance named by MONGO_TEST_URI
// and returns a repository over a throwaway database.
func setupTestRepository(t *testing.T) *Repository {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("Skipping Mongo integration test. Set MONGO_TEST_URI to run.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongodrv.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database("musician_media_test")
	t.Cleanup(func() {
		db.Drop(context.Background())
		client.Disconnect(context.Background())
	})

	return New(db)
}

func TestMediaRoundTrip(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	media := &musicmedia.Media{
		BlobID:      "blob-1",
		Filename:    "song.mp3",
		ContentType: "audio/mpeg",
		MediaType:   musicmedia.MediaTypeAudio,
		OwnerID:     "user-1",
		UploadDate:  time.Now().UTC().Truncate(time.Millisecond),
		IsPublic:    true,
	}
	require.NoError(t, repo.CreateMedia(ctx, media))
	require.NotEmpty(t, media.ID)

	got, err := repo.GetMedia(ctx, media.ID)
	require.NoError(t, err)
	assert.Equal(t, media.Filename, got.Filename)
	assert.Equal(t, media.BlobID, got.BlobID)

	deleted, err := repo.DeleteMedia(ctx, media.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetMedia(ctx, media.ID)
	assert.ErrorIs(t, err, musicmedia.ErrMediaNotFound)
}

func TestInvalidHexIDMapsToNotFound(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	_, err := repo.GetMedia(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, musicmedia.ErrMediaNotFound)

	deleted, err := repo.DeleteRating(ctx, "not-a-hex-id")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestLegacyRatingClampedOnLoad(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	// A record written before validation existed can sit outside [1,5];
	// the decode path coerces it instead of failing.
	_, err := repo.ratings.InsertOne(ctx, bson.M{
		"musicianId": "m-1",
		"userId":     "fan-1",
		"rating":     9,
		"createdAt":  time.Now().UTC(),
	})
	require.NoError(t, err)

	ratings, err := repo.ListRatingsByMusician(ctx, "m-1")
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, musicmedia.MaxRating, ratings[0].Rating)
}

func TestUpdateProfileBumpsTimestamp(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	profile := &musicmedia.Profile{
		UserID:    "user-1",
		Name:      "Ella",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateProfile(ctx, profile))

	updated, err := repo.UpdateProfile(ctx, profile.ID, musicmedia.ProfileUpdate{})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(now) || updated.UpdatedAt.Equal(now))
	assert.Equal(t, "Ella", updated.Name)
}

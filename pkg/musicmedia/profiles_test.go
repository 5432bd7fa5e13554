package musicmedia_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunehub/musician-media/pkg/musicmedia"
)

func TestCreateProfileDefaults(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	profile, err := svc.CreateProfile(ctx, musicmedia.CreateProfileRequest{
		UserID: "user-1",
		Name:   "Ella",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, profile.ID)
	assert.NotNil(t, profile.Genres)
	assert.NotNil(t, profile.Instruments)
	assert.Empty(t, profile.Genres)
	assert.Zero(t, profile.AverageRating)
	assert.Zero(t, profile.TotalRatings)
	assert.False(t, profile.CreatedAt.IsZero())
	assert.Equal(t, profile.CreatedAt, profile.UpdatedAt)
}

func TestGetProfileByUserID(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProfile(ctx, musicmedia.CreateProfileRequest{
		UserID: "user-1",
		Name:   "Ella",
	})
	require.NoError(t, err)

	got, err := svc.GetProfileByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetProfileByUserID(ctx, "nobody")
	assert.ErrorIs(t, err, musicmedia.ErrProfileNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	profile, err := svc.CreateProfile(ctx, musicmedia.CreateProfileRequest{
		UserID:      "user-1",
		Name:        "Ella",
		Biography:   "Singer",
		Genres:      []string{"jazz", "blues"},
		Instruments: []string{"voice"},
	})
	require.NoError(t, err)

	newName := "Ella F."
	updated, err := svc.UpdateProfile(ctx, musicmedia.UpdateProfileRequest{
		ID:     profile.ID,
		Name:   &newName,
		Genres: []string{"swing"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ella F.", updated.Name)
	assert.Equal(t, "Singer", updated.Biography, "nil field left untouched")
	assert.Equal(t, []string{"swing"}, updated.Genres, "genres replaced wholesale")
	assert.Equal(t, []string{"voice"}, updated.Instruments, "nil slice left untouched")
	assert.False(t, updated.UpdatedAt.Before(profile.UpdatedAt))

	// An update with no fields still bumps the timestamp.
	touched, err := svc.UpdateProfile(ctx, musicmedia.UpdateProfileRequest{ID: profile.ID})
	require.NoError(t, err)
	assert.False(t, touched.UpdatedAt.Before(updated.UpdatedAt))

	_, err = svc.UpdateProfile(ctx, musicmedia.UpdateProfileRequest{ID: "no-such-id", Name: &newName})
	assert.ErrorIs(t, err, musicmedia.ErrProfileNotFound)
}

func TestDeleteProfile(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	profile, err := svc.CreateProfile(ctx, musicmedia.CreateProfileRequest{
		UserID: "user-1",
		Name:   "Ella",
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteProfile(ctx, profile.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.GetProfile(ctx, profile.ID)
	assert.ErrorIs(t, err, musicmedia.ErrProfileNotFound)

	deleted, err = svc.DeleteProfile(ctx, profile.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteProfileLeavesRatings(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	profile, err := svc.CreateProfile(ctx, musicmedia.CreateProfileRequest{
		UserID: "user-1",
		Name:   "Ella",
	})
	require.NoError(t, err)

	_, err = svc.AddRating(ctx, musicmedia.RateRequest{
		MusicianID: profile.ID,
		UserID:     "fan-1",
		Rating:     5,
	})
	require.NoError(t, err)

	_, err = svc.DeleteProfile(ctx, profile.ID)
	require.NoError(t, err)

	// No cascade: the rating survives as an orphan.
	ratings, err := svc.ListRatingsByMusician(ctx, profile.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 1)
}

func TestListProfiles(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for _, userID := range []string{"user-1", "user-2", "user-3"} {
		_, err := svc.CreateProfile(ctx, musicmedia.CreateProfileRequest{
			UserID: userID,
			Name:   "Musician " + userID,
		})
		require.NoError(t, err)
	}

	profiles, err := svc.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 3)
}

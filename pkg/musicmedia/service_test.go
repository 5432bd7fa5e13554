package musicmedia_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunehub/musician-media/pkg/musicmedia"
	"github.com/tunehub/musician-media/pkg/musicmedia/repo/memory"
	memorystorage "github.com/tunehub/musician-media/pkg/musicmedia/storage/memory"
)

func setupTestService(t *testing.T) (musicmedia.Service, *memorystorage.Backend) {
	t.Helper()

	store := memorystorage.New()
	svc, err := musicmedia.New(
		musicmedia.WithRepository(memory.New()),
		musicmedia.WithBlobStore(store),
	)
	require.NoError(t, err)

	return svc, store
}

func TestServiceCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []musicmedia.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []musicmedia.Option{},
			expectError: true,
		},
		{
			name: "repository only should fail",
			options: []musicmedia.Option{
				musicmedia.WithRepository(memory.New()),
			},
			expectError: true,
		},
		{
			name: "blob store only should fail",
			options: []musicmedia.Option{
				musicmedia.WithBlobStore(memorystorage.New()),
			},
			expectError: true,
		},
		{
			name: "repository and blob store should succeed",
			options: []musicmedia.Option{
				musicmedia.WithRepository(memory.New()),
				musicmedia.WithBlobStore(memorystorage.New()),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := musicmedia.New(tt.options...)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	content := []byte("0123456789") // 10 bytes
	media, err := svc.UploadMedia(ctx, musicmedia.UploadMediaRequest{
		OwnerID:     "user-1",
		Filename:    "cover.png",
		ContentType: "image/png",
		Title:       "Album cover",
	}, bytes.NewReader(content))
	require.NoError(t, err)
	require.NotEmpty(t, media.ID)
	require.NotEmpty(t, media.BlobID)

	assert.Equal(t, musicmedia.MediaTypeImage, media.MediaType)
	assert.Equal(t, int64(10), media.FileSize)
	assert.True(t, media.IsPublic, "visibility defaults to public")
	assert.False(t, media.UploadDate.IsZero())

	got, body, err := svc.DownloadMedia(ctx, media.ID)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, media.ID, got.ID)
	assert.Equal(t, media.BlobID, got.BlobID)
}

func TestUploadExplicitVisibility(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	private := false
	media, err := svc.UploadMedia(ctx, musicmedia.UploadMediaRequest{
		OwnerID:     "user-1",
		Filename:    "demo.mp3",
		ContentType: "audio/mpeg",
		IsPublic:    &private,
	}, bytes.NewReader([]byte("xx")))
	require.NoError(t, err)
	assert.False(t, media.IsPublic)
	assert.Equal(t, musicmedia.MediaTypeAudio, media.MediaType)
}

// recordingStore captures the blob IDs handed out by Upload so tests can
// inspect the store after a failed upload.
type recordingStore struct {
	*memorystorage.Backend
	uploaded []string
}

func (r *recordingStore) Upload(ctx context.Context, filename string, reader io.Reader, envelope musicmedia.BlobEnvelope) (string, int64, error) {
	blobID, size, err := r.Backend.Upload(ctx, filename, reader, envelope)
	if err == nil {
		r.uploaded = append(r.uploaded, blobID)
	}
	return blobID, size, err
}

func TestUploadSizeMismatchCompensates(t *testing.T) {
	store := &recordingStore{Backend: memorystorage.New()}
	svc, err := musicmedia.New(
		musicmedia.WithRepository(memory.New()),
		musicmedia.WithBlobStore(store),
	)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.UploadMedia(ctx, musicmedia.UploadMediaRequest{
		OwnerID:      "user-1",
		Filename:     "truncated.png",
		ContentType:  "image/png",
		DeclaredSize: 100,
	}, bytes.NewReader([]byte("0123456789")))
	require.Error(t, err)
	assert.ErrorIs(t, err, musicmedia.ErrSizeMismatch)

	// The blob written before the mismatch was detected must be gone.
	require.Len(t, store.uploaded, 1)
	exists, err := store.Exists(ctx, store.uploaded[0])
	require.NoError(t, err)
	assert.False(t, exists, "mismatched blob should have been compensated away")
}

// failingStore rejects every upload.
type failingStore struct {
	*memorystorage.Backend
}

func (f *failingStore) Upload(ctx context.Context, filename string, reader io.Reader, envelope musicmedia.BlobEnvelope) (string, int64, error) {
	return "", 0, errors.New("backend offline")
}

func TestUploadBlobFailure(t *testing.T) {
	svc, err := musicmedia.New(
		musicmedia.WithRepository(memory.New()),
		musicmedia.WithBlobStore(&failingStore{Backend: memorystorage.New()}),
	)
	require.NoError(t, err)

	_, err = svc.UploadMedia(context.Background(), musicmedia.UploadMediaRequest{
		OwnerID:     "user-1",
		Filename:    "x.png",
		ContentType: "image/png",
	}, bytes.NewReader([]byte("x")))
	require.Error(t, err)

	var storageErr *musicmedia.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Empty(t, storageErr.BlobID)
	// No blob exists yet, so the message must not reference an empty one.
	assert.NotContains(t, err.Error(), "for blob")
	assert.Contains(t, err.Error(), "backend offline")
}

func TestDownloadContentMissing(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	media, err := svc.UploadMedia(ctx, musicmedia.UploadMediaRequest{
		OwnerID:     "user-1",
		Filename:    "gone.mp3",
		ContentType: "audio/mpeg",
	}, bytes.NewReader([]byte("abc")))
	require.NoError(t, err)

	// Remove the blob out from under the metadata record.
	deleted, err := store.Delete(ctx, media.BlobID)
	require.NoError(t, err)
	require.True(t, deleted)

	// The metadata record is still there.
	_, err = svc.GetMedia(ctx, media.ID)
	require.NoError(t, err)

	// Download distinguishes orphaned metadata from a missing record.
	_, _, err = svc.DownloadMedia(ctx, media.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, musicmedia.ErrContentMissing)
	assert.NotErrorIs(t, err, musicmedia.ErrMediaNotFound)

	_, _, err = svc.DownloadMedia(ctx, "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, musicmedia.ErrMediaNotFound)
}

func TestDeleteMedia(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	media, err := svc.UploadMedia(ctx, musicmedia.UploadMediaRequest{
		OwnerID:     "user-1",
		Filename:    "clip.mp4",
		ContentType: "video/mp4",
	}, bytes.NewReader([]byte("frames")))
	require.NoError(t, err)

	deleted, err := svc.DeleteMedia(ctx, media.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.GetMedia(ctx, media.ID)
	assert.ErrorIs(t, err, musicmedia.ErrMediaNotFound)

	exists, err := store.Exists(ctx, media.BlobID)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again is a no-op, not an error.
	deleted, err = svc.DeleteMedia(ctx, media.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteMediaWithMissingBlob(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	media, err := svc.UploadMedia(ctx, musicmedia.UploadMediaRequest{
		OwnerID:     "user-1",
		Filename:    "orphan.png",
		ContentType: "image/png",
	}, bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	_, err = store.Delete(ctx, media.BlobID)
	require.NoError(t, err)

	// Dangling metadata still gets cleaned up.
	deleted, err := svc.DeleteMedia(ctx, media.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestUpdateMediaMetadata(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	media, err := svc.UploadMedia(ctx, musicmedia.UploadMediaRequest{
		OwnerID:     "user-1",
		Filename:    "track.mp3",
		ContentType: "audio/mpeg",
		Title:       "Rough mix",
	}, bytes.NewReader([]byte("audio")))
	require.NoError(t, err)

	newTitle := "Final mix"
	private := false
	updated, err := svc.UpdateMediaMetadata(ctx, musicmedia.UpdateMediaRequest{
		ID:       media.ID,
		Title:    &newTitle,
		IsPublic: &private,
	})
	require.NoError(t, err)

	assert.Equal(t, "Final mix", updated.Title)
	assert.False(t, updated.IsPublic)
	assert.Equal(t, media.Description, updated.Description, "untouched field survives")
	assert.Equal(t, media.BlobID, updated.BlobID)
	assert.Equal(t, media.FileSize, updated.FileSize)

	// The advisory envelope mirrors the authoritative record.
	envelope, ok := store.Envelope(media.BlobID)
	require.True(t, ok)
	assert.Equal(t, "Final mix", envelope.Title)
	assert.False(t, envelope.IsPublic)

	_, err = svc.UpdateMediaMetadata(ctx, musicmedia.UpdateMediaRequest{
		ID:    "no-such-id",
		Title: &newTitle,
	})
	assert.ErrorIs(t, err, musicmedia.ErrMediaNotFound)
}

func TestListMediaByOwner(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	private := false
	for _, upload := range []musicmedia.UploadMediaRequest{
		{OwnerID: "alice", Filename: "a.png", ContentType: "image/png"},
		{OwnerID: "alice", Filename: "b.png", ContentType: "image/png", IsPublic: &private},
		{OwnerID: "bob", Filename: "c.png", ContentType: "image/png"},
	} {
		_, err := svc.UploadMedia(ctx, upload, bytes.NewReader([]byte("x")))
		require.NoError(t, err)
	}

	all, err := svc.ListMediaByOwner(ctx, "alice", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	public, err := svc.ListMediaByOwner(ctx, "alice", true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "a.png", public[0].Filename)

	none, err := svc.ListMediaByOwner(ctx, "nobody", false)
	require.NoError(t, err)
	assert.Empty(t, none)
}

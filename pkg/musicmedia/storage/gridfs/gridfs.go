package gridfs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tunehub/musician-media/pkg/musicmedia"
)

// chunkSize is the GridFS chunk size in bytes.
const chunkSize = 1024 * 1024

// Backend is a GridFS implementation of the musicmedia.BlobStore interface.
// Blob IDs are the hex form of the GridFS file ObjectIDs; the advisory
// envelope is stored as the GridFS file metadata document.
type Backend struct {
	bucket *gridfs.Bucket
	files  *mongo.Collection
}

// New creates a GridFS blob store over the given database, using the
// default "fs" bucket.
func New(db *mongo.Database) (*Backend, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetChunkSizeBytes(chunkSize))
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs bucket: %w", err)
	}

	return &Backend{
		bucket: bucket,
		files:  db.Collection("fs.files"),
	}, nil
}

// countingReader counts the bytes handed to GridFS so Upload can report the
// stored blob length.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Upload streams content into the bucket under a fresh file ID
func (b *Backend) Upload(ctx context.Context, filename string, reader io.Reader, envelope musicmedia.BlobEnvelope) (string, int64, error) {
	counting := &countingReader{r: reader}
	opts := options.GridFSUpload().SetMetadata(envelope)

	fileID, err := b.bucket.UploadFromStream(filename, counting, opts)
	if err != nil {
		return "", 0, fmt.Errorf("gridfs upload failed: %w", err)
	}

	return fileID.Hex(), counting.n, nil
}

// Download opens a stream over the stored chunks
func (b *Backend) Download(ctx context.Context, blobID string) (io.ReadCloser, error) {
	fileID, err := primitive.ObjectIDFromHex(blobID)
	if err != nil {
		return nil, musicmedia.ErrBlobNotFound
	}

	stream, err := b.bucket.OpenDownloadStream(fileID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, musicmedia.ErrBlobNotFound
		}
		return nil, fmt.Errorf("gridfs download failed: %w", err)
	}

	return stream, nil
}

// Exists reports whether a file exists under blobID
func (b *Backend) Exists(ctx context.Context, blobID string) (bool, error) {
	fileID, err := primitive.ObjectIDFromHex(blobID)
	if err != nil {
		return false, nil
	}

	cursor, err := b.bucket.FindContext(ctx, bson.M{"_id": fileID})
	if err != nil {
		return false, fmt.Errorf("gridfs find failed: %w", err)
	}
	defer cursor.Close(ctx)

	return cursor.Next(ctx), cursor.Err()
}

// Delete removes the file document and its chunks
func (b *Backend) Delete(ctx context.Context, blobID string) (bool, error) {
	fileID, err := primitive.ObjectIDFromHex(blobID)
	if err != nil {
		return false, nil
	}

	if err := b.bucket.DeleteContext(ctx, fileID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("gridfs delete failed: %w", err)
	}

	return true, nil
}

// UpdateEnvelope rewrites the metadata document on the fs.files entry
func (b *Backend) UpdateEnvelope(ctx context.Context, blobID string, envelope musicmedia.BlobEnvelope) error {
	fileID, err := primitive.ObjectIDFromHex(blobID)
	if err != nil {
		return musicmedia.ErrBlobNotFound
	}

	result, err := b.files.UpdateOne(ctx, bson.M{"_id": fileID}, bson.M{"$set": bson.M{
		"metadata.title":       envelope.Title,
		"metadata.description": envelope.Description,
		"metadata.isPublic":    envelope.IsPublic,
	}})
	if err != nil {
		return fmt.Errorf("gridfs metadata update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return musicmedia.ErrBlobNotFound
	}
	return nil
}

package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/tunehub/musician-media/pkg/musicmedia"
)

// Config options for the S3 backend
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (MinIO et al.)
}

// Backend is an S3-compatible implementation of the musicmedia.BlobStore
// interface. Blob IDs double as object keys; the filename and advisory
// envelope travel as object metadata.
type Backend struct {
	client *s3.Client
	bucket string
}

// New creates a new S3-compatible blob store
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	return &Backend{
		client: s3.NewFromConfig(awsCfg, s3Options...),
		bucket: config.Bucket,
	}, nil
}

func envelopeMetadata(filename string, envelope musicmedia.BlobEnvelope) map[string]string {
	return map[string]string{
		"filename":    filename,
		"owner-id":    envelope.OwnerID,
		"title":       envelope.Title,
		"description": envelope.Description,
		"upload-date": envelope.UploadDate.UTC().Format(time.RFC3339),
		"is-public":   strconv.FormatBool(envelope.IsPublic),
	}
}

// countingReader counts bytes handed to the uploader so Upload can report
// the stored blob length.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Upload streams content to S3 under a fresh object key
func (b *Backend) Upload(ctx context.Context, filename string, reader io.Reader, envelope musicmedia.BlobEnvelope) (string, int64, error) {
	blobID := uuid.NewString()
	counting := &countingReader{r: reader}

	uploader := manager.NewUploader(b.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:   aws.String(b.bucket),
		Key:      aws.String(blobID),
		Body:     counting,
		Metadata: envelopeMetadata(filename, envelope),
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return blobID, counting.n, nil
}

// Download streams content from S3
func (b *Backend) Download(ctx context.Context, blobID string) (io.ReadCloser, error) {
	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(blobID),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, musicmedia.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to download from S3: %w", err)
	}

	return result.Body, nil
}

// Exists reports whether an object exists under blobID
func (b *Backend) Exists(ctx context.Context, blobID string) (bool, error) {
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(blobID),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check S3 object: %w", err)
	}
	return true, nil
}

// Delete removes the object
func (b *Backend) Delete(ctx context.Context, blobID string) (bool, error) {
	exists, err := b.Exists(ctx, blobID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	_, err = b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(blobID),
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete from S3: %w", err)
	}

	return true, nil
}

// UpdateEnvelope rewrites the object metadata. S3 metadata is immutable, so
// the object is copied onto itself with a replaced metadata set.
func (b *Backend) UpdateEnvelope(ctx context.Context, blobID string, envelope musicmedia.BlobEnvelope) error {
	head, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(blobID),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return musicmedia.ErrBlobNotFound
		}
		return fmt.Errorf("failed to check S3 object: %w", err)
	}

	filename := head.Metadata["filename"]

	_, err = b.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:            aws.String(b.bucket),
		Key:               aws.String(blobID),
		CopySource:        aws.String(b.bucket + "/" + blobID),
		Metadata:          envelopeMetadata(filename, envelope),
		MetadataDirective: types.MetadataDirectiveReplace,
	})
	if err != nil {
		return fmt.Errorf("failed to update S3 object metadata: %w", err)
	}

	return nil
}

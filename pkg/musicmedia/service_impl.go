package musicmedia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobStore  BlobStore
	stats      *RatingStatsUpdater
	logger     *zap.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the metadata repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		logger: zap.NewNop(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	s.stats = NewRatingStatsUpdater(s.repository)

	return s, nil
}

// Media operations

// UploadMedia binds a blob and its metadata record as one logical entity.
// The blob is written first; if the metadata insert fails, a compensating
// blob delete is attempted and a failed compensation is logged as an orphan.
func (s *service) UploadMedia(ctx context.Context, req UploadMediaRequest, reader io.Reader) (*Media, error) {
	now := time.Now().UTC()
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	envelope := BlobEnvelope{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		UploadDate:  now,
		IsPublic:    isPublic,
	}

	blobID, size, err := s.blobStore.Upload(ctx, req.Filename, reader, envelope)
	if err != nil {
		// No blob ID exists yet when the upload itself fails.
		return nil, &StorageError{Op: "upload", Err: err}
	}

	if req.DeclaredSize > 0 && req.DeclaredSize != size {
		s.compensateBlob(ctx, blobID, "size_mismatch")
		return nil, &MediaError{Op: "upload", Err: fmt.Errorf("%w: declared %d, stored %d", ErrSizeMismatch, req.DeclaredSize, size)}
	}

	media := &Media{
		BlobID:      blobID,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		MediaType:   MediaTypeFromContentType(req.ContentType),
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		FileSize:    size,
		UploadDate:  now,
		IsPublic:    isPublic,
	}

	if err := s.repository.CreateMedia(ctx, media); err != nil {
		s.compensateBlob(ctx, blobID, "metadata_insert_failed")
		return nil, &MediaError{Op: "upload", Err: err}
	}

	return media, nil
}

// compensateBlob deletes a blob written by a failed upload. A blob that
// survives a failed compensation is an orphan; it is logged for the
// out-of-band reconciliation job.
func (s *service) compensateBlob(ctx context.Context, blobID, reason string) {
	if _, err := s.blobStore.Delete(ctx, blobID); err != nil {
		s.logger.Warn("orphaned blob: compensating delete failed",
			zap.String("blob_id", blobID),
			zap.String("reason", reason),
			zap.Error(err))
	}
}

func (s *service) GetMedia(ctx context.Context, id string) (*Media, error) {
	return s.repository.GetMedia(ctx, id)
}

// DownloadMedia looks up the metadata record, then streams the blob. A
// record whose blob is gone fails with ErrContentMissing so callers can tell
// "never existed" from "metadata orphaned".
func (s *service) DownloadMedia(ctx context.Context, id string) (*Media, io.ReadCloser, error) {
	media, err := s.repository.GetMedia(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.blobStore.Download(ctx, media.BlobID)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return nil, nil, &MediaError{MediaID: id, Op: "download", Err: ErrContentMissing}
		}
		return nil, nil, &StorageError{BlobID: media.BlobID, Op: "download", Err: err}
	}

	return media, reader, nil
}

// UpdateMediaMetadata applies the mutable fields to the metadata record and
// mirrors them onto the blob-side envelope. The two writes are independent
// and last-writer-wins; the metadata record is authoritative, so an envelope
// write failure is logged rather than propagated.
func (s *service) UpdateMediaMetadata(ctx context.Context, req UpdateMediaRequest) (*Media, error) {
	media, err := s.repository.UpdateMediaFields(ctx, req.ID, MediaUpdate{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return nil, err
	}

	envelope := BlobEnvelope{
		OwnerID:     media.OwnerID,
		Title:       media.Title,
		Description: media.Description,
		UploadDate:  media.UploadDate,
		IsPublic:    media.IsPublic,
	}
	if err := s.blobStore.UpdateEnvelope(ctx, media.BlobID, envelope); err != nil {
		s.logger.Warn("advisory envelope update failed",
			zap.String("media_id", media.ID),
			zap.String("blob_id", media.BlobID),
			zap.Error(err))
	}

	return media, nil
}

// DeleteMedia removes the blob first, then the metadata record. A crash
// mid-operation leaves at worst a dangling metadata record, caught as
// ErrContentMissing on the next download, never an unindexed blob.
func (s *service) DeleteMedia(ctx context.Context, id string) (bool, error) {
	media, err := s.repository.GetMedia(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMediaNotFound) {
			return false, nil
		}
		return false, err
	}

	existed, err := s.blobStore.Delete(ctx, media.BlobID)
	if err != nil {
		return false, &StorageError{BlobID: media.BlobID, Op: "delete", Err: err}
	}
	if !existed {
		// Blob already gone: dangling metadata, proceed with the cleanup.
		s.logger.Warn("deleting media whose blob is already missing",
			zap.String("media_id", id),
			zap.String("blob_id", media.BlobID))
	}

	return s.repository.DeleteMedia(ctx, id)
}

// ListMediaByOwner returns the owner's media in store order. Callers needing
// a stable order must sort client-side by UploadDate.
func (s *service) ListMediaByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]*Media, error) {
	return s.repository.ListMediaByOwner(ctx, ownerID, publicOnly)
}

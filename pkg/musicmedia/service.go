package musicmedia

import (
	"context"
	"io"
)

// Service defines the main interface for the musician-media library.
//
// Every multi-step operation is a best-effort sequence of per-document
// atomic writes, not a transaction: the upload path writes the blob before
// the metadata record, the delete path removes the blob before the metadata
// record, and every rating mutation synchronously recomputes the musician's
// aggregate before returning.
type Service interface {
	// Media operations
	UploadMedia(ctx context.Context, req UploadMediaRequest, reader io.Reader) (*Media, error)
	GetMedia(ctx context.Context, id string) (*Media, error)
	// DownloadMedia returns the media record alongside its content stream.
	// The caller owns the returned ReadCloser.
	DownloadMedia(ctx context.Context, id string) (*Media, io.ReadCloser, error)
	UpdateMediaMetadata(ctx context.Context, req UpdateMediaRequest) (*Media, error)
	DeleteMedia(ctx context.Context, id string) (bool, error)
	ListMediaByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]*Media, error)

	// Profile operations
	CreateProfile(ctx context.Context, req CreateProfileRequest) (*Profile, error)
	GetProfile(ctx context.Context, id string) (*Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error)
	DeleteProfile(ctx context.Context, id string) (bool, error)

	// Rating operations
	AddRating(ctx context.Context, req RateRequest) (*Rating, error)
	UpsertRating(ctx context.Context, req RateRequest) (*Rating, error)
	GetRating(ctx context.Context, id string) (*Rating, error)
	ListRatingsByMusician(ctx context.Context, musicianID string) ([]*Rating, error)
	ListRatings(ctx context.Context) ([]*Rating, error)
	DeleteRating(ctx context.Context, id string) (bool, error)
}

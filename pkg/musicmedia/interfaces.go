package musicmedia

import (
	"context"
	"io"
	"time"
)

// BlobEnvelope is the small advisory metadata attached to a blob entry for
// redundancy and debuggability. The metadata record is authoritative; the
// envelope is a best-effort mirror of its mutable fields.
type BlobEnvelope struct {
	OwnerID     string    `json:"owner_id" bson:"ownerId"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	UploadDate  time.Time `json:"upload_date" bson:"uploadDate"`
	IsPublic    bool      `json:"is_public" bson:"isPublic"`
}

// BlobStore defines the interface for chunked binary storage backends keyed
// by an opaque, store-assigned blob ID.
type BlobStore interface {
	// Upload streams content into the store under a fresh blob ID and
	// returns the ID along with the number of bytes written.
	Upload(ctx context.Context, filename string, reader io.Reader, envelope BlobEnvelope) (string, int64, error)

	// Download streams content out of the store. Returns ErrBlobNotFound
	// when no blob exists under blobID.
	Download(ctx context.Context, blobID string) (io.ReadCloser, error)

	// Exists reports whether a blob exists under blobID.
	Exists(ctx context.Context, blobID string) (bool, error)

	// Delete removes a blob. Returns false when no blob existed.
	Delete(ctx context.Context, blobID string) (bool, error)

	// UpdateEnvelope rewrites the advisory envelope stored alongside the
	// blob. Returns ErrBlobNotFound when no blob exists under blobID.
	UpdateEnvelope(ctx context.Context, blobID string, envelope BlobEnvelope) error
}

// Repository defines the interface for metadata persistence over a document
// collection per entity: insert, point lookup, filtered list, partial
// update, delete.
//
// Implementations return the package sentinel errors for absent entities and
// wrap connection-level failures in ErrStoreUnavailable.
type Repository interface {
	// Media operations
	CreateMedia(ctx context.Context, media *Media) error
	GetMedia(ctx context.Context, id string) (*Media, error)
	ListMediaByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]*Media, error)
	UpdateMediaFields(ctx context.Context, id string, update MediaUpdate) (*Media, error)
	DeleteMedia(ctx context.Context, id string) (bool, error)

	// Profile operations
	CreateProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, id string) (*Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*Profile, error)
	// UpdateProfileRatingStats writes the two derived rating fields via a
	// targeted partial update; no other profile field is touched.
	UpdateProfileRatingStats(ctx context.Context, id string, averageRating float64, totalRatings int) error
	DeleteProfile(ctx context.Context, id string) (bool, error)

	// Rating operations
	CreateRating(ctx context.Context, rating *Rating) error
	GetRating(ctx context.Context, id string) (*Rating, error)
	FindRating(ctx context.Context, musicianID, userID string) (*Rating, error)
	ListRatingsByMusician(ctx context.Context, musicianID string) ([]*Rating, error)
	ListRatings(ctx context.Context) ([]*Rating, error)
	DeleteRating(ctx context.Context, id string) (bool, error)
}

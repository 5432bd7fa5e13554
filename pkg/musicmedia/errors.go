package musicmedia

import (
	"errors"
	"fmt"
)

// Error kinds
var (
	// ErrMediaNotFound indicates a media record was not found
	ErrMediaNotFound = errors.New("media not found")

	// ErrProfileNotFound indicates a musician profile was not found
	ErrProfileNotFound = errors.New("profile not found")

	// ErrRatingNotFound indicates a rating was not found
	ErrRatingNotFound = errors.New("rating not found")

	// ErrBlobNotFound indicates a blob was not found in the blob store.
	// Blob store implementations return it so callers can tell a missing
	// blob from an adapter failure.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrContentMissing indicates a media record exists but its blob does
	// not. Distinct from ErrMediaNotFound: the metadata record is orphaned,
	// the entity did not simply never exist.
	ErrContentMissing = errors.New("media content missing")

	// ErrDuplicateRating indicates the user already rated this musician
	ErrDuplicateRating = errors.New("user has already rated this musician")

	// ErrInvalidRating indicates a rating value outside [1,5] on a strict path
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrSizeMismatch indicates the stored blob length disagrees with the
	// declared file size
	ErrSizeMismatch = errors.New("file size does not match uploaded content")

	// ErrStoreUnavailable indicates an adapter-level failure, e.g. loss of
	// the store connection
	ErrStoreUnavailable = errors.New("store unavailable")
)

// MediaError represents an error related to media operations
type MediaError struct {
	MediaID string
	Op      string
	Err     error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("media operation %s failed for media %s: %v", e.Op, e.MediaID, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

// ProfileError represents an error related to profile operations
type ProfileError struct {
	ProfileID string
	Op        string
	Err       error
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("profile operation %s failed for profile %s: %v", e.Op, e.ProfileID, e.Err)
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}

// RatingError represents an error related to rating operations
type RatingError struct {
	MusicianID string
	Op         string
	Err        error
}

func (e *RatingError) Error() string {
	return fmt.Sprintf("rating operation %s failed for musician %s: %v", e.Op, e.MusicianID, e.Err)
}

func (e *RatingError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob storage operations
type StorageError struct {
	BlobID string
	Op     string
	Err    error
}

func (e *StorageError) Error() string {
	// A failed upload has no blob ID yet.
	if e.BlobID == "" {
		return fmt.Sprintf("storage operation %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage operation %s failed for blob %s: %v", e.Op, e.BlobID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

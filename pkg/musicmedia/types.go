package musicmedia

import (
	"strings"
	"time"
)

// MediaType is the coarse classification derived from a MIME content type.
type MediaType string

// Media type constants (typed).
const (
	MediaTypeImage    MediaType = "image"
	MediaTypeAudio    MediaType = "audio"
	MediaTypeVideo    MediaType = "video"
	MediaTypeDocument MediaType = "document"
	MediaTypeOther    MediaType = "other"
	MediaTypeUnknown  MediaType = "unknown"
)

// MediaTypeFromContentType derives the media type from a MIME content type.
func MediaTypeFromContentType(contentType string) MediaType {
	if contentType == "" {
		return MediaTypeUnknown
	}

	contentType = strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaTypeImage
	case strings.HasPrefix(contentType, "audio/"):
		return MediaTypeAudio
	case strings.HasPrefix(contentType, "video/"):
		return MediaTypeVideo
	case contentType == "application/pdf":
		return MediaTypeDocument
	default:
		return MediaTypeOther
	}
}

// Media represents an uploaded multimedia file: the metadata record bound to
// a blob held in a BlobStore.
//
// ID is the metadata-store surrogate key and BlobID the blob-store key; they
// are distinct namespaces and must never be conflated. A Media with a
// non-empty ID whose blob is gone is surfaced as ErrContentMissing on
// download, not ErrMediaNotFound.
type Media struct {
	ID          string    `json:"id"`
	BlobID      string    `json:"blob_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	MediaType   MediaType `json:"media_type"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	FileSize    int64     `json:"file_size"`
	UploadDate  time.Time `json:"upload_date"`
	IsPublic    bool      `json:"is_public"`
}

// MediaUpdate carries the mutable metadata fields of a Media. Nil fields are
// left untouched. BlobID, Filename and FileSize are fixed at upload time and
// have no place here.
type MediaUpdate struct {
	Title       *string
	Description *string
	IsPublic    *bool
}

// Profile represents a musician profile.
//
// AverageRating and TotalRatings are derived fields maintained by the
// RatingStatsUpdater; they are never set directly through the update path.
type Profile struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Biography     string    `json:"biography,omitempty"`
	Genres        []string  `json:"genres"`
	Instruments   []string  `json:"instruments"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int       `json:"total_ratings"`
}

// ProfileUpdate carries the caller-mutable profile fields. Genre and
// instrument slices replace the stored containers wholesale when non-nil;
// callers that want to append must read-modify-write the full slice.
type ProfileUpdate struct {
	Name        *string
	Biography   *string
	Genres      []string
	Instruments []string
}

// Rating value bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating represents one user's rating of one musician. At most one rating
// exists per (MusicianID, UserID) pair; an upsert replaces the record and
// assigns a new ID, so callers must not assume ID stability across updates.
type Rating struct {
	ID         string    `json:"id"`
	MusicianID string    `json:"musician_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ClampRating coerces a rating value into [MinRating, MaxRating]. This is
// the lenient path used when decoding persisted or legacy records; mutating
// API paths reject out-of-range values instead (see ErrInvalidRating).
func ClampRating(value int) int {
	if value < MinRating {
		return MinRating
	}
	if value > MaxRating {
		return MaxRating
	}
	return value
}

// ValidRating reports whether value is within [MinRating, MaxRating].
func ValidRating(value int) bool {
	return value >= MinRating && value <= MaxRating
}

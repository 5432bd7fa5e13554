package musicmedia

// Request DTOs

// UploadMediaRequest contains parameters for uploading a media file. The
// byte stream travels separately (see Service.UploadMedia).
//
// DeclaredSize is optional; when positive, the upload fails with
// ErrSizeMismatch if the stored blob length disagrees. IsPublic defaults to
// true when nil.
type UploadMediaRequest struct {
	OwnerID      string
	Filename     string
	ContentType  string
	Title        string
	Description  string
	DeclaredSize int64
	IsPublic     *bool
}

// UpdateMediaRequest contains the mutable metadata fields for a media
// record. Only title, description and visibility can change after upload.
type UpdateMediaRequest struct {
	ID          string
	Title       *string
	Description *string
	IsPublic    *bool
}

// CreateProfileRequest contains parameters for creating a musician profile.
type CreateProfileRequest struct {
	UserID      string
	Name        string
	Biography   string
	Genres      []string
	Instruments []string
}

// UpdateProfileRequest contains parameters for updating a musician profile.
// Nil fields are left untouched; non-nil Genres/Instruments replace the
// stored containers wholesale.
type UpdateProfileRequest struct {
	ID          string
	Name        *string
	Biography   *string
	Genres      []string
	Instruments []string
}

// RateRequest contains parameters for adding or upserting a rating.
type RateRequest struct {
	MusicianID string
	UserID     string
	Rating     int
	Comment    string
}

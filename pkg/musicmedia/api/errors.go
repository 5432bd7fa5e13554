package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/tunehub/musician-media/pkg/musicmedia"
)

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps domain errors onto HTTP status codes. Unknown errors
// are treated as internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, musicmedia.ErrMediaNotFound),
		errors.Is(err, musicmedia.ErrProfileNotFound),
		errors.Is(err, musicmedia.ErrRatingNotFound),
		errors.Is(err, musicmedia.ErrBlobNotFound),
		errors.Is(err, musicmedia.ErrContentMissing):
		return http.StatusNotFound
	case errors.Is(err, musicmedia.ErrDuplicateRating):
		return http.StatusConflict
	case errors.Is(err, musicmedia.ErrInvalidRating),
		errors.Is(err, musicmedia.ErrSizeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, musicmedia.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error()})
}

func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: msg})
}

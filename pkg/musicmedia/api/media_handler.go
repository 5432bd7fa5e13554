package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/tunehub/musician-media/pkg/musicmedia"
)

// maxUploadMemory caps the in-memory portion of a multipart parse; anything
// larger spills to temp files.
const maxUploadMemory = 32 << 20

// MediaHandler handles HTTP requests for multimedia files
type MediaHandler struct {
	service musicmedia.Service
	logger  *zap.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(service musicmedia.Service, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{service: service, logger: logger}
}

// Routes returns the routes for media
func (h *MediaHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.UploadMedia)
	r.Get("/{id}", h.GetMedia)
	r.Get("/{id}/download", h.DownloadMedia)
	r.Patch("/{id}", h.UpdateMedia)
	r.Delete("/{id}", h.DeleteMedia)
	r.Get("/owner/{ownerID}", h.ListMediaByOwner)

	return r
}

// UploadMedia accepts a multipart upload. The file travels in the "file"
// part; owner_id, title, description and is_public are ordinary form fields.
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		badRequest(w, r, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, r, "missing 'file' part")
		return
	}
	defer file.Close()

	ownerID := r.FormValue("owner_id")
	if ownerID == "" {
		badRequest(w, r, "owner_id is required")
		return
	}

	req := musicmedia.UploadMediaRequest{
		OwnerID:      ownerID,
		Filename:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		DeclaredSize: header.Size,
	}

	if v := r.FormValue("is_public"); v != "" {
		isPublic, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, r, "is_public must be a boolean")
			return
		}
		req.IsPublic = &isPublic
	}

	media, err := h.service.UploadMedia(r.Context(), req, file)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info("media uploaded",
		zap.String("media_id", media.ID),
		zap.String("owner_id", media.OwnerID),
		zap.Int64("file_size", media.FileSize))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, media)
}

// GetMedia retrieves a media record by ID
func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	media, err := h.service.GetMedia(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, media)
}

// DownloadMedia streams the stored file back to the client
func (h *MediaHandler) DownloadMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	media, body, err := h.service.DownloadMedia(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	defer body.Close()

	if media.ContentType != "" {
		w.Header().Set("Content-Type", media.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", media.Filename))
	if media.FileSize > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(media.FileSize, 10))
	}

	if _, err := io.Copy(w, body); err != nil {
		// Headers are gone; all we can do is log.
		h.logger.Warn("media download interrupted",
			zap.String("media_id", id), zap.Error(err))
	}
}

// UpdateMediaRequest is the request body for updating media metadata
type UpdateMediaRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

// UpdateMedia updates the mutable metadata fields of a media record
func (h *MediaHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateMediaRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	media, err := h.service.UpdateMediaMetadata(r.Context(), musicmedia.UpdateMediaRequest{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, media)
}

// DeleteMedia deletes a media record and its blob
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.DeleteMedia(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if !deleted {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "media not found"})
		return
	}

	h.logger.Info("media deleted", zap.String("media_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ListMediaByOwner lists media owned by a user. Pass ?public=true to
// restrict the listing to public records.
func (h *MediaHandler) ListMediaByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	publicOnly := r.URL.Query().Get("public") == "true"

	media, err := h.service.ListMediaByOwner(r.Context(), ownerID, publicOnly)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, media)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/tunehub/musician-media/pkg/musicmedia"
)

// ProfileHandler handles HTTP requests for musician profiles
type ProfileHandler struct {
	service musicmedia.Service
	logger  *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service musicmedia.Service, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, logger: logger}
}

// Routes returns the routes for profiles
func (h *ProfileHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateProfile)
	r.Get("/", h.ListProfiles)
	r.Get("/{id}", h.GetProfile)
	r.Get("/user/{userID}", h.GetProfileByUserID)
	r.Put("/{id}", h.UpdateProfile)
	r.Delete("/{id}", h.DeleteProfile)

	return r
}

// CreateProfileRequest is the request body for creating a profile
type CreateProfileRequest struct {
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Biography   string   `json:"biography"`
	Genres      []string `json:"genres"`
	Instruments []string `json:"instruments"`
}

// CreateProfile creates a new musician profile
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	if req.UserID == "" {
		badRequest(w, r, "user_id is required")
		return
	}
	if req.Name == "" {
		badRequest(w, r, "name is required")
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), musicmedia.CreateProfileRequest{
		UserID:      req.UserID,
		Name:        req.Name,
		Biography:   req.Biography,
		Genres:      req.Genres,
		Instruments: req.Instruments,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info("profile created",
		zap.String("profile_id", profile.ID),
		zap.String("user_id", profile.UserID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, profile)
}

// GetProfile retrieves a profile by ID
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, profile)
}

// GetProfileByUserID retrieves a profile by the owning user's ID
func (h *ProfileHandler) GetProfileByUserID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	profile, err := h.service.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, profile)
}

// ListProfiles lists all musician profiles
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListProfiles(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, profiles)
}

// UpdateProfileRequest is the request body for updating a profile. Omitted
// fields are left untouched; genres and instruments replace the stored
// values wholesale when present.
type UpdateProfileRequest struct {
	Name        *string  `json:"name"`
	Biography   *string  `json:"biography"`
	Genres      []string `json:"genres"`
	Instruments []string `json:"instruments"`
}

// UpdateProfile updates a musician profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProfileRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), musicmedia.UpdateProfileRequest{
		ID:          id,
		Name:        req.Name,
		Biography:   req.Biography,
		Genres:      req.Genres,
		Instruments: req.Instruments,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, profile)
}

// DeleteProfile deletes a musician profile
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.DeleteProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if !deleted {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "profile not found"})
		return
	}

	h.logger.Info("profile deleted", zap.String("profile_id", id))
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/tunehub/musician-media/pkg/musicmedia"
)

// RatingHandler handles HTTP requests for ratings
type RatingHandler struct {
	service musicmedia.Service
	logger  *zap.Logger
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(service musicmedia.Service, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{service: service, logger: logger}
}

// Routes returns the routes for ratings
func (h *RatingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.AddRating)
	r.Put("/", h.UpsertRating)
	r.Get("/", h.ListRatings)
	r.Get("/{id}", h.GetRating)
	r.Get("/musician/{musicianID}", h.ListRatingsByMusician)
	r.Delete("/{id}", h.DeleteRating)

	return r
}

// RateRequest is the request body for adding or replacing a rating
type RateRequest struct {
	MusicianID string `json:"musician_id"`
	UserID     string `json:"user_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (req *RateRequest) toDomain() (musicmedia.RateRequest, string) {
	if req.MusicianID == "" {
		return musicmedia.RateRequest{}, "musician_id is required"
	}
	if req.UserID == "" {
		return musicmedia.RateRequest{}, "user_id is required"
	}
	return musicmedia.RateRequest{
		MusicianID: req.MusicianID,
		UserID:     req.UserID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}, ""
}

// AddRating records a new rating. A second rating from the same user for
// the same musician is rejected with 409.
func (h *RatingHandler) AddRating(w http.ResponseWriter, r *http.Request) {
	var req RateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	domainReq, msg := req.toDomain()
	if msg != "" {
		badRequest(w, r, msg)
		return
	}

	rating, err := h.service.AddRating(r.Context(), domainReq)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info("rating added",
		zap.String("rating_id", rating.ID),
		zap.String("musician_id", rating.MusicianID),
		zap.Int("rating", rating.Rating))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, rating)
}

// UpsertRating records a rating, replacing any existing rating from the
// same user for the same musician. The replacement gets a fresh ID.
func (h *RatingHandler) UpsertRating(w http.ResponseWriter, r *http.Request) {
	var req RateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	domainReq, msg := req.toDomain()
	if msg != "" {
		badRequest(w, r, msg)
		return
	}

	rating, err := h.service.UpsertRating(r.Context(), domainReq)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, rating)
}

// GetRating retrieves a rating by ID
func (h *RatingHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rating, err := h.service.GetRating(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, rating)
}

// ListRatingsByMusician lists all ratings for a musician
func (h *RatingHandler) ListRatingsByMusician(w http.ResponseWriter, r *http.Request) {
	musicianID := chi.URLParam(r, "musicianID")

	ratings, err := h.service.ListRatingsByMusician(r.Context(), musicianID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, ratings)
}

// ListRatings lists all ratings across all musicians
func (h *RatingHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.ListRatings(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, ratings)
}

// DeleteRating deletes a rating and recomputes the musician's aggregate
func (h *RatingHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.DeleteRating(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if !deleted {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "rating not found"})
		return
	}

	h.logger.Info("rating deleted", zap.String("rating_id", id))
	w.WriteHeader(http.StatusNoContent)
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tunehub/musician-media/pkg/musicmedia"
)

// Repository implements musicmedia.Repository using in-memory storage
type Repository struct {
	mu       sync.RWMutex
	media    map[string]*musicmedia.Media
	profiles map[string]*musicmedia.Profile
	ratings  map[string]*musicmedia.Rating
}

// New creates a new in-memory repository
func New() musicmedia.Repository {
	return &Repository{
		media:    make(map[string]*musicmedia.Media),
		profiles: make(map[string]*musicmedia.Profile),
		ratings:  make(map[string]*musicmedia.Rating),
	}
}

// Media operations

func (r *Repository) CreateMedia(ctx context.Context, media *musicmedia.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if media.ID == "" {
		media.ID = uuid.NewString()
	}

	// Store a copy to avoid external modifications
	mediaCopy := *media
	r.media[media.ID] = &mediaCopy

	return nil
}

func (r *Repository) GetMedia(ctx context.Context, id string) (*musicmedia.Media, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	media, exists := r.media[id]
	if !exists {
		return nil, musicmedia.ErrMediaNotFound
	}

	mediaCopy := *media
	return &mediaCopy, nil
}

func (r *Repository) ListMediaByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]*musicmedia.Media, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*musicmedia.Media{}
	for _, media := range r.media {
		if media.OwnerID != ownerID {
			continue
		}
		if publicOnly && !media.IsPublic {
			continue
		}
		mediaCopy := *media
		result = append(result, &mediaCopy)
	}

	return result, nil
}

func (r *Repository) UpdateMediaFields(ctx context.Context, id string, update musicmedia.MediaUpdate) (*musicmedia.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	media, exists := r.media[id]
	if !exists {
		return nil, musicmedia.ErrMediaNotFound
	}

	if update.Title != nil {
		media.Title = *update.Title
	}
	if update.Description != nil {
		media.Description = *update.Description
	}
	if update.IsPublic != nil {
		media.IsPublic = *update.IsPublic
	}

	mediaCopy := *media
	return &mediaCopy, nil
}

func (r *Repository) DeleteMedia(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.media[id]; !exists {
		return false, nil
	}

	delete(r.media, id)
	return true, nil
}

// Profile operations

func (r *Repository) CreateProfile(ctx context.Context, profile *musicmedia.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}

	profileCopy := *profile
	r.profiles[profile.ID] = &profileCopy

	return nil
}

func (r *Repository) GetProfile(ctx context.Context, id string) (*musicmedia.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[id]
	if !exists {
		return nil, musicmedia.ErrProfileNotFound
	}

	profileCopy := *profile
	return &profileCopy, nil
}

func (r *Repository) GetProfileByUserID(ctx context.Context, userID string) (*musicmedia.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, profile := range r.profiles {
		if profile.UserID == userID {
			profileCopy := *profile
			return &profileCopy, nil
		}
	}

	return nil, musicmedia.ErrProfileNotFound
}

func (r *Repository) ListProfiles(ctx context.Context) ([]*musicmedia.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*musicmedia.Profile{}
	for _, profile := range r.profiles {
		profileCopy := *profile
		result = append(result, &profileCopy)
	}

	return result, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, id string, update musicmedia.ProfileUpdate) (*musicmedia.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, exists := r.profiles[id]
	if !exists {
		return nil, musicmedia.ErrProfileNotFound
	}

	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Biography != nil {
		profile.Biography = *update.Biography
	}
	if update.Genres != nil {
		profile.Genres = append([]string(nil), update.Genres...)
	}
	if update.Instruments != nil {
		profile.Instruments = append([]string(nil), update.Instruments...)
	}
	// updatedAt is bumped regardless of which fields changed
	profile.UpdatedAt = time.Now().UTC()

	profileCopy := *profile
	return &profileCopy, nil
}

func (r *Repository) UpdateProfileRatingStats(ctx context.Context, id string, averageRating float64, totalRatings int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, exists := r.profiles[id]
	if !exists {
		return musicmedia.ErrProfileNotFound
	}

	profile.AverageRating = averageRating
	profile.TotalRatings = totalRatings

	return nil
}

func (r *Repository) DeleteProfile(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[id]; !exists {
		return false, nil
	}

	delete(r.profiles, id)
	return true, nil
}

// Rating operations

func (r *Repository) CreateRating(ctx context.Context, rating *musicmedia.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}

	ratingCopy := *rating
	r.ratings[rating.ID] = &ratingCopy

	return nil
}

func (r *Repository) GetRating(ctx context.Context, id string) (*musicmedia.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rating, exists := r.ratings[id]
	if !exists {
		return nil, musicmedia.ErrRatingNotFound
	}

	ratingCopy := *rating
	return &ratingCopy, nil
}

func (r *Repository) FindRating(ctx context.Context, musicianID, userID string) (*musicmedia.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rating := range r.ratings {
		if rating.MusicianID == musicianID && rating.UserID == userID {
			ratingCopy := *rating
			return &ratingCopy, nil
		}
	}

	return nil, musicmedia.ErrRatingNotFound
}

func (r *Repository) ListRatingsByMusician(ctx context.Context, musicianID string) ([]*musicmedia.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*musicmedia.Rating{}
	for _, rating := range r.ratings {
		if rating.MusicianID == musicianID {
			ratingCopy := *rating
			result = append(result, &ratingCopy)
		}
	}

	return result, nil
}

func (r *Repository) ListRatings(ctx context.Context) ([]*musicmedia.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*musicmedia.Rating{}
	for _, rating := range r.ratings {
		ratingCopy := *rating
		result = append(result, &ratingCopy)
	}

	return result, nil
}

func (r *Repository) DeleteRating(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ratings[id]; !exists {
		return false, nil
	}

	delete(r.ratings, id)
	return true, nil
}

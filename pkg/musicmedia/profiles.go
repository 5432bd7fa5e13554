package musicmedia

import (
	"context"
	"time"
)

// Profile operations

func (s *service) CreateProfile(ctx context.Context, req CreateProfileRequest) (*Profile, error) {
	now := time.Now().UTC()
	profile := &Profile{
		UserID:        req.UserID,
		Name:          req.Name,
		Biography:     req.Biography,
		Genres:        req.Genres,
		Instruments:   req.Instruments,
		CreatedAt:     now,
		UpdatedAt:     now,
		AverageRating: 0,
		TotalRatings:  0,
	}
	if profile.Genres == nil {
		profile.Genres = []string{}
	}
	if profile.Instruments == nil {
		profile.Instruments = []string{}
	}

	if err := s.repository.CreateProfile(ctx, profile); err != nil {
		return nil, &ProfileError{Op: "create", Err: err}
	}

	return profile, nil
}

func (s *service) GetProfile(ctx context.Context, id string) (*Profile, error) {
	return s.repository.GetProfile(ctx, id)
}

func (s *service) GetProfileByUserID(ctx context.Context, userID string) (*Profile, error) {
	return s.repository.GetProfileByUserID(ctx, userID)
}

func (s *service) ListProfiles(ctx context.Context) ([]*Profile, error) {
	return s.repository.ListProfiles(ctx)
}

// UpdateProfile applies the caller-mutable fields; updatedAt is bumped
// regardless of which fields changed, and provided genre/instrument slices
// replace the stored containers wholesale. The derived rating fields are not
// reachable from here.
func (s *service) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error) {
	profile, err := s.repository.UpdateProfile(ctx, req.ID, ProfileUpdate{
		Name:        req.Name,
		Biography:   req.Biography,
		Genres:      req.Genres,
		Instruments: req.Instruments,
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile removes the profile only. Ratings and media referencing it
// become orphans; no cascading delete is performed.
func (s *service) DeleteProfile(ctx context.Context, id string) (bool, error) {
	return s.repository.DeleteProfile(ctx, id)
}

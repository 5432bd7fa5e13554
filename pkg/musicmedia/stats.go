package musicmedia

import "context"

// RatingStatsUpdater maintains the denormalized rating aggregate on a
// musician profile.
//
// Recompute reads the musician's entire current rating set and derives the
// average and count from it, rather than keeping incremental counters. The
// O(n) cost per mutation buys correctness-by-reconstruction: the aggregate
// always equals a deterministic function of the ratings at the instant of
// the read, and no drift can accumulate. Do not replace this with
// increment/decrement arithmetic without adding a concurrency guard.
type RatingStatsUpdater struct {
	repository Repository
}

// NewRatingStatsUpdater creates a stats updater over the given repository.
func NewRatingStatsUpdater(repo Repository) *RatingStatsUpdater {
	return &RatingStatsUpdater{repository: repo}
}

// Recompute re-derives averageRating and totalRatings for the musician and
// writes them via a targeted partial update on the profile. An empty rating
// set yields 0/0.
func (u *RatingStatsUpdater) Recompute(ctx context.Context, musicianID string) error {
	ratings, err := u.repository.ListRatingsByMusician(ctx, musicianID)
	if err != nil {
		return err
	}

	var sum int
	for _, r := range ratings {
		sum += r.Rating
	}

	average := 0.0
	if len(ratings) > 0 {
		average = float64(sum) / float64(len(ratings))
	}

	return u.repository.UpdateProfileRatingStats(ctx, musicianID, average, len(ratings))
}

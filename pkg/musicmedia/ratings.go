package musicmedia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Rating operations
//
// Every successful mutation synchronously recomputes the musician's
// aggregate before returning, so callers always observe an up-to-date
// average and count. There is no optimistic-concurrency guard between the
// read of the rating set and the write of the aggregate: concurrent
// mutations on the same musician race and the last recompute wins.

// AddRating inserts a new rating. It never overwrites: an existing rating
// for the same (musician, user) pair fails with ErrDuplicateRating; use
// UpsertRating for the replace flow.
func (s *service) AddRating(ctx context.Context, req RateRequest) (*Rating, error) {
	if !ValidRating(req.Rating) {
		return nil, &RatingError{MusicianID: req.MusicianID, Op: "add", Err: fmt.Errorf("%w: got %d", ErrInvalidRating, req.Rating)}
	}

	existing, err := s.repository.FindRating(ctx, req.MusicianID, req.UserID)
	if err != nil && !errors.Is(err, ErrRatingNotFound) {
		return nil, &RatingError{MusicianID: req.MusicianID, Op: "add", Err: err}
	}
	if existing != nil {
		return nil, &RatingError{MusicianID: req.MusicianID, Op: "add", Err: ErrDuplicateRating}
	}

	rating := &Rating{
		MusicianID: req.MusicianID,
		UserID:     req.UserID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repository.CreateRating(ctx, rating); err != nil {
		return nil, &RatingError{MusicianID: req.MusicianID, Op: "add", Err: err}
	}

	if err := s.recompute(ctx, req.MusicianID); err != nil {
		return nil, err
	}

	return rating, nil
}

// UpsertRating replaces any existing rating for the (musician, user) pair
// with a new record. The replacement is a delete-then-insert, not a
// field-level update: a logical update yields a new physical identity, so
// the returned rating's ID differs from the replaced one's.
func (s *service) UpsertRating(ctx context.Context, req RateRequest) (*Rating, error) {
	if !ValidRating(req.Rating) {
		return nil, &RatingError{MusicianID: req.MusicianID, Op: "upsert", Err: fmt.Errorf("%w: got %d", ErrInvalidRating, req.Rating)}
	}

	existing, err := s.repository.FindRating(ctx, req.MusicianID, req.UserID)
	if err != nil && !errors.Is(err, ErrRatingNotFound) {
		return nil, &RatingError{MusicianID: req.MusicianID, Op: "upsert", Err: err}
	}
	if existing != nil {
		if _, err := s.repository.DeleteRating(ctx, existing.ID); err != nil {
			return nil, &RatingError{MusicianID: req.MusicianID, Op: "upsert", Err: err}
		}
	}

	rating := &Rating{
		MusicianID: req.MusicianID,
		UserID:     req.UserID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repository.CreateRating(ctx, rating); err != nil {
		return nil, &RatingError{MusicianID: req.MusicianID, Op: "upsert", Err: err}
	}

	if err := s.recompute(ctx, req.MusicianID); err != nil {
		return nil, err
	}

	return rating, nil
}

func (s *service) GetRating(ctx context.Context, id string) (*Rating, error) {
	return s.repository.GetRating(ctx, id)
}

func (s *service) ListRatingsByMusician(ctx context.Context, musicianID string) ([]*Rating, error) {
	return s.repository.ListRatingsByMusician(ctx, musicianID)
}

// ListRatings is best-effort: a store failure on this read-heavy scan is
// logged and an empty list returned instead of propagating a hard error.
func (s *service) ListRatings(ctx context.Context) ([]*Rating, error) {
	ratings, err := s.repository.ListRatings(ctx)
	if err != nil {
		s.logger.Warn("listing all ratings failed, returning empty set", zap.Error(err))
		return []*Rating{}, nil
	}
	return ratings, nil
}

// DeleteRating looks up the rating to capture its musician before deleting,
// then recomputes that musician's aggregate. A missing rating is a no-op and
// never triggers recomputation.
func (s *service) DeleteRating(ctx context.Context, id string) (bool, error) {
	rating, err := s.repository.GetRating(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRatingNotFound) {
			return false, nil
		}
		return false, err
	}

	deleted, err := s.repository.DeleteRating(ctx, id)
	if err != nil {
		return false, &RatingError{MusicianID: rating.MusicianID, Op: "delete", Err: err}
	}
	if !deleted {
		return false, nil
	}

	if err := s.recompute(ctx, rating.MusicianID); err != nil {
		return false, err
	}

	return true, nil
}

// recompute re-derives the musician's aggregate. The rating mutation has
// already succeeded by the time this runs, so a musician whose profile no
// longer exists is logged and tolerated; store failures propagate.
func (s *service) recompute(ctx context.Context, musicianID string) error {
	if err := s.stats.Recompute(ctx, musicianID); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			s.logger.Warn("rating aggregate skipped: profile missing",
				zap.String("musician_id", musicianID))
			return nil
		}
		return &RatingError{MusicianID: musicianID, Op: "recompute", Err: err}
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tunehub/musician-media/pkg/musicmedia"
)

// Collection names.
const (
	mediaCollection    = "media"
	profilesCollection = "musician_profiles"
	ratingsCollection  = "ratings"
)

// Repository implements musicmedia.Repository backed by MongoDB collections.
type Repository struct {
	media    *mongo.Collection
	profiles *mongo.Collection
	ratings  *mongo.Collection
}

// New creates a repository over the given database.
func New(db *mongo.Database) *Repository {
	return &Repository{
		media:    db.Collection(mediaCollection),
		profiles: db.Collection(profilesCollection),
		ratings:  db.Collection(ratingsCollection),
	}
}

// storeErr wraps driver failures so callers can classify them as adapter
// unavailability; document-absence sentinels pass through untouched.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", musicmedia.ErrStoreUnavailable, op, err)
}

func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// Media operations

type mediaDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	BlobID      string             `bson:"blobId"`
	Filename    string             `bson:"filename"`
	ContentType string             `bson:"contentType"`
	MediaType   string             `bson:"mediaType"`
	OwnerID     string             `bson:"ownerId"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	FileSize    int64              `bson:"fileSize"`
	UploadDate  time.Time          `bson:"uploadDate"`
	IsPublic    bool               `bson:"isPublic"`
}

func (d *mediaDoc) toDomain() *musicmedia.Media {
	return &musicmedia.Media{
		ID:          d.ID.Hex(),
		BlobID:      d.BlobID,
		Filename:    d.Filename,
		ContentType: d.ContentType,
		MediaType:   musicmedia.MediaType(d.MediaType),
		OwnerID:     d.OwnerID,
		Title:       d.Title,
		Description: d.Description,
		FileSize:    d.FileSize,
		UploadDate:  d.UploadDate,
		IsPublic:    d.IsPublic,
	}
}

func (r *Repository) CreateMedia(ctx context.Context, media *musicmedia.Media) error {
	doc := mediaDoc{
		BlobID:      media.BlobID,
		Filename:    media.Filename,
		ContentType: media.ContentType,
		MediaType:   string(media.MediaType),
		OwnerID:     media.OwnerID,
		Title:       media.Title,
		Description: media.Description,
		FileSize:    media.FileSize,
		UploadDate:  media.UploadDate,
		IsPublic:    media.IsPublic,
	}

	result, err := r.media.InsertOne(ctx, doc)
	if err != nil {
		return storeErr("insert media", err)
	}
	media.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *Repository) GetMedia(ctx context.Context, id string) (*musicmedia.Media, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, musicmedia.ErrMediaNotFound
	}

	var doc mediaDoc
	err := r.media.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, musicmedia.ErrMediaNotFound
		}
		return nil, storeErr("find media", err)
	}
	return doc.toDomain(), nil
}

func (r *Repository) ListMediaByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]*musicmedia.Media, error) {
	filter := bson.M{"ownerId": ownerID}
	if publicOnly {
		filter["isPublic"] = true
	}

	cursor, err := r.media.Find(ctx, filter)
	if err != nil {
		return nil, storeErr("list media", err)
	}
	defer cursor.Close(ctx)

	result := []*musicmedia.Media{}
	for cursor.Next(ctx) {
		var doc mediaDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, storeErr("decode media", err)
		}
		result = append(result, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, storeErr("list media", err)
	}
	return result, nil
}

func (r *Repository) UpdateMediaFields(ctx context.Context, id string, update musicmedia.MediaUpdate) (*musicmedia.Media, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, musicmedia.ErrMediaNotFound
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.IsPublic != nil {
		set["isPublic"] = *update.IsPublic
	}
	if len(set) == 0 {
		return r.GetMedia(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mediaDoc
	err := r.media.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, musicmedia.ErrMediaNotFound
		}
		return nil, storeErr("update media", err)
	}
	return doc.toDomain(), nil
}

func (r *Repository) DeleteMedia(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	result, err := r.media.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, storeErr("delete media", err)
	}
	return result.DeletedCount == 1, nil
}

// Profile operations

type profileDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"userId"`
	Name          string             `bson:"name"`
	Biography     string             `bson:"biography"`
	Genres        []string           `bson:"genres"`
	Instruments   []string           `bson:"instruments"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
	AverageRating float64            `bson:"averageRating"`
	TotalRatings  int                `bson:"totalRatings"`
}

func (d *profileDoc) toDomain() *musicmedia.Profile {
	genres := d.Genres
	if genres == nil {
		genres = []string{}
	}
	instruments := d.Instruments
	if instruments == nil {
		instruments = []string{}
	}
	return &musicmedia.Profile{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		Name:          d.Name,
		Biography:     d.Biography,
		Genres:        genres,
		Instruments:   instruments,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		AverageRating: d.AverageRating,
		TotalRatings:  d.TotalRatings,
	}
}

func (r *Repository) CreateProfile(ctx context.Context, profile *musicmedia.Profile) error {
	doc := profileDoc{
		UserID:        profile.UserID,
		Name:          profile.Name,
		Biography:     profile.Biography,
		Genres:        profile.Genres,
		Instruments:   profile.Instruments,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
		AverageRating: profile.AverageRating,
		TotalRatings:  profile.TotalRatings,
	}

	result, err := r.profiles.InsertOne(ctx, doc)
	if err != nil {
		return storeErr("insert profile", err)
	}
	profile.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *Repository) GetProfile(ctx context.Context, id string) (*musicmedia.Profile, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, musicmedia.ErrProfileNotFound
	}

	var doc profileDoc
	err := r.profiles.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, musicmedia.ErrProfileNotFound
		}
		return nil, storeErr("find profile", err)
	}
	return doc.toDomain(), nil
}

func (r *Repository) GetProfileByUserID(ctx context.Context, userID string) (*musicmedia.Profile, error) {
	var doc profileDoc
	err := r.profiles.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, musicmedia.ErrProfileNotFound
		}
		return nil, storeErr("find profile by user", err)
	}
	return doc.toDomain(), nil
}

func (r *Repository) ListProfiles(ctx context.Context) ([]*musicmedia.Profile, error) {
	cursor, err := r.profiles.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("list profiles", err)
	}
	defer cursor.Close(ctx)

	result := []*musicmedia.Profile{}
	for cursor.Next(ctx) {
		var doc profileDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, storeErr("decode profile", err)
		}
		result = append(result, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, storeErr("list profiles", err)
	}
	return result, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, id string, update musicmedia.ProfileUpdate) (*musicmedia.Profile, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, musicmedia.ErrProfileNotFound
	}

	// updatedAt is bumped on every update regardless of which fields
	// changed; provided containers replace wholesale.
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Biography != nil {
		set["biography"] = *update.Biography
	}
	if update.Genres != nil {
		set["genres"] = update.Genres
	}
	if update.Instruments != nil {
		set["instruments"] = update.Instruments
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc profileDoc
	err := r.profiles.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, musicmedia.ErrProfileNotFound
		}
		return nil, storeErr("update profile", err)
	}
	return doc.toDomain(), nil
}

func (r *Repository) UpdateProfileRatingStats(ctx context.Context, id string, averageRating float64, totalRatings int) error {
	oid, ok := objectID(id)
	if !ok {
		return musicmedia.ErrProfileNotFound
	}

	result, err := r.profiles.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"averageRating": averageRating,
		"totalRatings":  totalRatings,
	}})
	if err != nil {
		return storeErr("update rating stats", err)
	}
	if result.MatchedCount == 0 {
		return musicmedia.ErrProfileNotFound
	}
	return nil
}

func (r *Repository) DeleteProfile(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	result, err := r.profiles.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, storeErr("delete profile", err)
	}
	return result.DeletedCount == 1, nil
}

// Rating operations

type ratingDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	MusicianID string             `bson:"musicianId"`
	UserID     string             `bson:"userId"`
	Rating     int                `bson:"rating"`
	Comment    string             `bson:"comment"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d *ratingDoc) toDomain() *musicmedia.Rating {
	return &musicmedia.Rating{
		ID:         d.ID.Hex(),
		MusicianID: d.MusicianID,
		UserID:     d.UserID,
		// Legacy records may hold out-of-range values; coerce on load.
		Rating:    musicmedia.ClampRating(d.Rating),
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

func (r *Repository) CreateRating(ctx context.Context, rating *musicmedia.Rating) error {
	doc := ratingDoc{
		MusicianID: rating.MusicianID,
		UserID:     rating.UserID,
		Rating:     rating.Rating,
		Comment:    rating.Comment,
		CreatedAt:  rating.CreatedAt,
	}

	result, err := r.ratings.InsertOne(ctx, doc)
	if err != nil {
		return storeErr("insert rating", err)
	}
	rating.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *Repository) GetRating(ctx context.Context, id string) (*musicmedia.Rating, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, musicmedia.ErrRatingNotFound
	}

	var doc ratingDoc
	err := r.ratings.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, musicmedia.ErrRatingNotFound
		}
		return nil, storeErr("find rating", err)
	}
	return doc.toDomain(), nil
}

func (r *Repository) FindRating(ctx context.Context, musicianID, userID string) (*musicmedia.Rating, error) {
	var doc ratingDoc
	err := r.ratings.FindOne(ctx, bson.M{"musicianId": musicianID, "userId": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, musicmedia.ErrRatingNotFound
		}
		return nil, storeErr("find rating by pair", err)
	}
	return doc.toDomain(), nil
}

func (r *Repository) ListRatingsByMusician(ctx context.Context, musicianID string) ([]*musicmedia.Rating, error) {
	return r.listRatings(ctx, bson.M{"musicianId": musicianID})
}

func (r *Repository) ListRatings(ctx context.Context) ([]*musicmedia.Rating, error) {
	return r.listRatings(ctx, bson.M{})
}

func (r *Repository) listRatings(ctx context.Context, filter bson.M) ([]*musicmedia.Rating, error) {
	cursor, err := r.ratings.Find(ctx, filter)
	if err != nil {
		return nil, storeErr("list ratings", err)
	}
	defer cursor.Close(ctx)

	result := []*musicmedia.Rating{}
	for cursor.Next(ctx) {
		var doc ratingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, storeErr("decode rating", err)
		}
		result = append(result, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, storeErr("list ratings", err)
	}
	return result, nil
}

func (r *Repository) DeleteRating(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	result, err := r.ratings.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, storeErr("delete rating", err)
	}
	return result.DeletedCount == 1, nil
}

package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

const collectionProfiles = "jobseeker_profiles"

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(collectionProfiles)}
}

// mongoProfile mirrors domain.Profile with an ObjectID primary key.
type mongoProfile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	FirstName  string             `bson:"first_name"`
	LastName   string             `bson:"last_name"`
	Phone      string             `bson:"phone"`
	Skills     []string           `bson:"skills"`
	Experience string             `bson:"experience"`
	Education  string             `bson:"education"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (p mongoProfile) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:         p.ID.Hex(),
		UserID:     p.UserID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Phone:      p.Phone,
		Skills:     p.Skills,
		Experience: p.Experience,
		Education:  p.Education,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// Create inserts a new profile document and backfills the generated id.
// The unique index on user_id backs the one-profile-per-user invariant.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProfile{
		UserID:     profile.UserID,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		Phone:      profile.Phone,
		Skills:     profile.Skills,
		Experience: profile.Experience,
		Education:  profile.Education,
		CreatedAt:  profile.CreatedAt,
		UpdatedAt:  profile.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrProfileExists
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		profile.ID = oid.Hex()
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *ProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p mongoProfile
	if err := r.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return p.toDomain(), nil
}

// Update applies the non-nil patch fields and returns the updated document.
func (r *ProfileRepository) Update(ctx context.Context, id string, patch ports.ProfilePatch) (*domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Skills != nil {
		set["skills"] = *patch.Skills
	}
	if patch.Experience != nil {
		set["experience"] = *patch.Experience
	}
	if patch.Education != nil {
		set["education"] = *patch.Education
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p mongoProfile
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return p.toDomain(), nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// EnsureIndexes creates the unique constraint backing one profile per user.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: uniqueIndex()},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

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

const collectionJobs = "jobs"

type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(collectionJobs)}
}

// mongoJob mirrors domain.Job with an ObjectID primary key.
type mongoJob struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Requirements    string             `bson:"requirements"`
	Salary          float64            `bson:"salary"`
	Location        string             `bson:"location"`
	JobType         string             `bson:"job_type"`
	ExperienceLevel string             `bson:"experience_level"`
	CompanyName     string             `bson:"company_name"`
	Industry        string             `bson:"industry"`
	ExpiredAt       time.Time          `bson:"expired_at"`
	OwnerID         string             `bson:"owner_id"`
	RequestID       string             `bson:"request_id,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (j mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:              j.ID.Hex(),
		Title:           j.Title,
		Description:     j.Description,
		Requirements:    j.Requirements,
		Salary:          j.Salary,
		Location:        j.Location,
		JobType:         domain.JobType(j.JobType),
		ExperienceLevel: domain.ExperienceLevel(j.ExperienceLevel),
		CompanyName:     j.CompanyName,
		Industry:        j.Industry,
		ExpiredAt:       j.ExpiredAt,
		OwnerID:         j.OwnerID,
		RequestID:       j.RequestID,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

// Create inserts a new job document and backfills the generated id.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoJob{
		Title:           job.Title,
		Description:     job.Description,
		Requirements:    job.Requirements,
		Salary:          job.Salary,
		Location:        job.Location,
		JobType:         string(job.JobType),
		ExperienceLevel: string(job.ExperienceLevel),
		CompanyName:     job.CompanyName,
		Industry:        job.Industry,
		ExpiredAt:       job.ExpiredAt,
		OwnerID:         job.OwnerID,
		RequestID:       job.RequestID,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		job.ID = oid.Hex()
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var j mongoJob
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&j); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	return j.toDomain(), nil
}

// FindByRequestID retrieves an existing job created with the given
// idempotency token.
func (r *JobRepository) FindByRequestID(ctx context.Context, requestID string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var j mongoJob
	if err := r.coll.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&j); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	return j.toDomain(), nil
}

// List returns a page of jobs matching filter and the total count, newest
// first.
func (r *JobRepository) List(ctx context.Context, filter ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	jobs := make([]*domain.Job, 0)
	for cursor.Next(ctx) {
		var j mongoJob
		if err := cursor.Decode(&j); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// Update applies the non-nil patch fields and returns the updated document.
func (r *JobRepository) Update(ctx context.Context, id string, patch ports.JobPatch) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Requirements != nil {
		set["requirements"] = *patch.Requirements
	}
	if patch.Salary != nil {
		set["salary"] = *patch.Salary
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.JobType != nil {
		set["job_type"] = string(*patch.JobType)
	}
	if patch.ExperienceLevel != nil {
		set["experience_level"] = string(*patch.ExperienceLevel)
	}
	if patch.CompanyName != nil {
		set["company_name"] = *patch.CompanyName
	}
	if patch.Industry != nil {
		set["industry"] = *patch.Industry
	}
	if patch.ExpiredAt != nil {
		set["expired_at"] = patch.ExpiredAt.UTC()
	}

	var j mongoJob
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&j)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	return j.toDomain(), nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the jobs collection. The
// request_id index backs the idempotency lookup on creation.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

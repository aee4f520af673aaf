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

const collectionApplications = "applications"

type ApplicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{coll: db.Collection(collectionApplications)}
}

type mongoResume struct {
	FileID      string `bson:"file_id"`
	FileName    string `bson:"file_name"`
	ContentType string `bson:"content_type"`
	Size        int64  `bson:"size"`
	URL         string `bson:"url"`
}

type mongoApplication struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	JobID       string             `bson:"job_id"`
	JobOwnerID  string             `bson:"job_owner_id"`
	ApplicantID string             `bson:"applicant_id"`
	Status      string             `bson:"status"`
	CoverLetter string             `bson:"cover_letter,omitempty"`
	Resume      mongoResume        `bson:"resume"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (a mongoApplication) toDomain() *domain.Application {
	return &domain.Application{
		ID:          a.ID.Hex(),
		JobID:       a.JobID,
		JobOwnerID:  a.JobOwnerID,
		ApplicantID: a.ApplicantID,
		Status:      domain.ApplicationStatus(a.Status),
		CoverLetter: a.CoverLetter,
		Resume: domain.ResumeRef{
			FileID:      a.Resume.FileID,
			FileName:    a.Resume.FileName,
			ContentType: a.Resume.ContentType,
			Size:        a.Resume.Size,
			URL:         a.Resume.URL,
		},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoApplication{
		JobID:       app.JobID,
		JobOwnerID:  app.JobOwnerID,
		ApplicantID: app.ApplicantID,
		Status:      string(app.Status),
		CoverLetter: app.CoverLetter,
		Resume: mongoResume{
			FileID:      app.Resume.FileID,
			FileName:    app.Resume.FileName,
			ContentType: app.Resume.ContentType,
			Size:        app.Resume.Size,
			URL:         app.Resume.URL,
		},
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyApplied
		}
		return nil, err
	}

	created := *app
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByJobAndApplicant returns the live application for the pair; backs the
// one-application-per-job invariant check on creation.
func (r *ApplicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error) {
	return r.findOne(ctx, bson.M{"job_id": jobID, "applicant_id": applicantID})
}

func (r *ApplicationRepository) FindByResumeFileID(ctx context.Context, fileID string) (*domain.Application, error) {
	return r.findOne(ctx, bson.M{"resume.file_id": fileID})
}

func (r *ApplicationRepository) findOne(ctx context.Context, filter bson.M) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a mongoApplication
	if err := r.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return a.toDomain(), nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter ports.ListApplicationsFilter) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ApplicantID != "" {
		query["applicant_id"] = filter.ApplicantID
	}
	if filter.JobOwnerID != "" {
		query["job_owner_id"] = filter.JobOwnerID
	}
	if filter.JobID != "" {
		query["job_id"] = filter.JobID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	apps := make([]*domain.Application, 0)
	for cursor.Next(ctx) {
		var a mongoApplication
		if err := cursor.Decode(&a); err != nil {
			return nil, err
		}
		apps = append(apps, a.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	return r.update(ctx, id, bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	})
}

func (r *ApplicationRepository) UpdateResume(ctx context.Context, id string, resume domain.ResumeRef) (*domain.Application, error) {
	return r.update(ctx, id, bson.M{
		"resume": mongoResume{
			FileID:      resume.FileID,
			FileName:    resume.FileName,
			ContentType: resume.ContentType,
			Size:        resume.Size,
			URL:         resume.URL,
		},
		"updated_at": time.Now().UTC(),
	})
}

// RepairJobRelation re-attaches the job reference on a record whose relation
// did not persist on insert.
func (r *ApplicationRepository) RepairJobRelation(ctx context.Context, id, jobID, jobOwnerID string) error {
	_, err := r.update(ctx, id, bson.M{
		"job_id":       jobID,
		"job_owner_id": jobOwnerID,
		"updated_at":   time.Now().UTC(),
	})
	return err
}

func (r *ApplicationRepository) update(ctx context.Context, id string, set bson.M) (*domain.Application, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a mongoApplication
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return a.toDomain(), nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrApplicationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes. The unique compound index backs
// the one-application-per-(job, applicant) invariant at the store level.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "applicant_id", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "job_owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "applicant_id", Value: 1}}},
		{Keys: bson.D{{Key: "resume.file_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

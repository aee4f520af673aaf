package storage

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

const bucketName = "resumes"

// ResumeStore implements ports.ResumeStorage on top of a GridFS bucket in the
// same MongoDB database that holds the entity collections.
type ResumeStore struct {
	bucket *gridfs.Bucket
}

func NewResumeStore(db *mongo.Database) (*ResumeStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &ResumeStore{bucket: bucket}, nil
}

// Upload stores the file and returns a reference. The URL is the API path a
// client uses to download the file back.
func (s *ResumeStore) Upload(ctx context.Context, upload ports.ResumeUpload) (*domain.ResumeRef, error) {
	s.applyDeadline(ctx)

	opts := options.GridFSUpload().SetMetadata(bson.M{
		"content_type": upload.ContentType,
	})
	fileID, err := s.bucket.UploadFromStream(upload.FileName, upload.Content, opts)
	if err != nil {
		return nil, fmt.Errorf("gridfs upload: %w", err)
	}

	id := fileID.Hex()
	return &domain.ResumeRef{
		FileID:      id,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Size:        upload.Size,
		URL:         "/v1/resumes/" + id,
	}, nil
}

// Download streams the stored file into w.
func (s *ResumeStore) Download(ctx context.Context, fileID string, w io.Writer) error {
	oid, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return fmt.Errorf("gridfs download: invalid file id %q", fileID)
	}

	s.applyDeadline(ctx)

	if _, err := s.bucket.DownloadToStream(oid, w); err != nil {
		return fmt.Errorf("gridfs download: %w", err)
	}
	return nil
}

// Delete removes the stored file. Missing files are not an error.
func (s *ResumeStore) Delete(ctx context.Context, fileID string) error {
	oid, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil
	}

	s.applyDeadline(ctx)

	if err := s.bucket.Delete(oid); err != nil && err != gridfs.ErrFileNotFound {
		return fmt.Errorf("gridfs delete: %w", err)
	}
	return nil
}

// applyDeadline propagates the request deadline to the bucket; gridfs
// operations do not take a context directly.
func (s *ResumeStore) applyDeadline(ctx context.Context) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
		_ = s.bucket.SetReadDeadline(deadline)
	}
}

package ports

import (
	"context"
	"io"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// ResumeStorage abstracts the blob store holding uploaded resumes.
type ResumeStorage interface {
	// Upload stores the file and returns a reference with a non-empty
	// FileID. An empty reference is treated as an upload failure by callers.
	Upload(ctx context.Context, upload ResumeUpload) (*domain.ResumeRef, error)
	// Download streams the stored file into w.
	Download(ctx context.Context, fileID string, w io.Writer) error
	// Delete removes the stored file. Missing files are not an error.
	Delete(ctx context.Context, fileID string) error
}

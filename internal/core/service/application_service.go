package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/api/metrics"
	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// allowedResumeTypes is the MIME allowlist for resume uploads. The generic
// binary type is accepted because some browsers send it for .doc files.
var allowedResumeTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/octet-stream": {},
}

type ApplicationService struct {
	repo    ports.ApplicationRepository
	jobRepo ports.JobRepository
	storage ports.ResumeStorage
	audit   ports.AuditSink
	logger  zerolog.Logger
}

func NewApplicationService(
	repo ports.ApplicationRepository,
	jobRepo ports.JobRepository,
	storage ports.ResumeStorage,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{repo: repo, jobRepo: jobRepo, storage: storage, audit: audit, logger: logger}
}

// CreateApplication submits an application. Only job seekers may apply, at
// most once per job. The resume is uploaded to blob storage before the
// record is inserted; the record is inserted with status pending.
func (s *ApplicationService) CreateApplication(ctx context.Context, p ports.Principal, input ports.CreateApplicationInput) (*domain.Application, error) {
	if p.Role != domain.RoleJobSeeker {
		return nil, domain.ErrForbidden
	}

	if input.Resume.Content == nil || input.Resume.FileName == "" {
		return nil, fmt.Errorf("%w: resume file is required", domain.ErrValidation)
	}
	if _, ok := allowedResumeTypes[input.Resume.ContentType]; !ok {
		return nil, fmt.Errorf("%w: resume type %q not allowed", domain.ErrValidation, input.Resume.ContentType)
	}

	job, err := s.jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByJobAndApplicant(ctx, input.JobID, p.ID)
	if err != nil && !errors.Is(err, domain.ErrApplicationNotFound) {
		return nil, err
	}
	if existing != nil {
		metrics.ApplicationErrorsTotal.WithLabelValues("already_applied").Inc()
		return nil, domain.ErrAlreadyApplied
	}

	timer := prometheus.NewTimer(metrics.ResumeUploadDuration)
	ref, err := s.storage.Upload(ctx, input.Resume)
	timer.ObserveDuration()
	if err != nil {
		s.logger.Error().Err(err).Str("job_id", input.JobID).Msg("resume upload failed")
		metrics.ApplicationErrorsTotal.WithLabelValues("upload_failed").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	if ref == nil || ref.FileID == "" {
		metrics.ApplicationErrorsTotal.WithLabelValues("upload_failed").Inc()
		return nil, fmt.Errorf("%w: storage returned no file reference", domain.ErrUploadFailed)
	}

	now := time.Now().UTC()
	app := &domain.Application{
		JobID:       job.ID,
		JobOwnerID:  job.OwnerID,
		ApplicantID: p.ID,
		Status:      domain.StatusPending,
		CoverLetter: input.CoverLetter,
		Resume:      *ref,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		s.logger.Error().Err(err).Str("job_id", input.JobID).Msg("failed to create application")
		// Best-effort cleanup of the now-orphaned blob.
		if delErr := s.storage.Delete(ctx, ref.FileID); delErr != nil {
			s.logger.Warn().Err(delErr).Str("file_id", ref.FileID).Msg("failed to delete orphaned resume")
		}
		return nil, err
	}

	// The underlying store has been observed to drop the job relation on
	// insert. Verify it persisted and repair once before giving up.
	verified, err := s.verifyJobRelation(ctx, created, job)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("application_id", verified.ID).Str("job_id", job.ID).Str("applicant_id", p.ID).Msg("application submitted")
	metrics.ApplicationsCreatedTotal.Inc()
	s.emitAudit(verified.ID, domain.AuditActionCreated, p.ID, "job "+job.ID)

	return verified, nil
}

// verifyJobRelation re-reads the application and, when the job reference is
// missing, repairs it with a single follow-up update and re-verifies. A
// failed repair surfaces the record id for diagnosis.
func (s *ApplicationService) verifyJobRelation(ctx context.Context, app *domain.Application, job *domain.Job) (*domain.Application, error) {
	reread, err := s.repo.FindByID(ctx, app.ID)
	if err != nil {
		return nil, fmt.Errorf("verify application %s: %w", app.ID, err)
	}
	if reread.JobID != "" {
		return reread, nil
	}

	s.logger.Warn().Str("application_id", app.ID).Str("job_id", job.ID).Msg("job relation missing after insert, repairing")
	metrics.ApplicationErrorsTotal.WithLabelValues("relation_repair").Inc()

	if err := s.repo.RepairJobRelation(ctx, app.ID, job.ID, job.OwnerID); err != nil {
		return nil, fmt.Errorf("%w: application %s: repair: %v", domain.ErrConsistency, app.ID, err)
	}

	repaired, err := s.repo.FindByID(ctx, app.ID)
	if err != nil {
		return nil, fmt.Errorf("verify application %s: %w", app.ID, err)
	}
	if repaired.JobID == "" {
		return nil, fmt.Errorf("%w: application %s", domain.ErrConsistency, app.ID)
	}
	return repaired, nil
}

// ListApplications returns applications visible to the caller: job seekers
// see their own, employers see applications against their jobs, admins see
// everything. Each item carries a denormalized job summary; items whose job
// relation came back empty from the store are patched by re-fetching the job.
func (s *ApplicationService) ListApplications(ctx context.Context, p ports.Principal) ([]*ports.ApplicationView, error) {
	filter := ports.ListApplicationsFilter{}
	switch p.Role {
	case domain.RoleJobSeeker:
		filter.ApplicantID = p.ID
	case domain.RoleEmployer:
		filter.JobOwnerID = p.ID
	case domain.RoleAdmin:
		// no scoping
	default:
		return nil, domain.ErrForbidden
	}

	apps, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list applications")
		return nil, err
	}

	views := make([]*ports.ApplicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, s.buildView(ctx, app))
	}
	return views, nil
}

// GetApplication returns a single application with its job summary, applying
// the same per-record visibility rules as listing.
func (s *ApplicationService) GetApplication(ctx context.Context, p ports.Principal, id string) (*ports.ApplicationView, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(p, app); err != nil {
		return nil, err
	}
	return s.buildView(ctx, app), nil
}

// UpdateStatus transitions an application through the review state machine.
// Only the employer owning the referenced job may transition it.
func (s *ApplicationService) UpdateStatus(ctx context.Context, p ports.Principal, id string, status string) (*domain.Application, error) {
	next := domain.ApplicationStatus(status)
	if !domain.ValidStatus(next) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role != domain.RoleEmployer || app.JobOwnerID != p.ID {
		return nil, domain.ErrForbidden
	}
	if !app.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, app.Status, next)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		s.logger.Error().Err(err).Str("application_id", id).Msg("failed to update application status")
		return nil, err
	}

	s.logger.Info().Str("application_id", id).Str("from", string(app.Status)).Str("to", string(next)).Msg("application status updated")
	metrics.ApplicationStatusTransitionsTotal.WithLabelValues(string(app.Status), string(next)).Inc()
	s.emitAudit(id, domain.AuditActionStatusChanged, p.ID, string(app.Status)+" -> "+string(next))

	return updated, nil
}

// UpdateResume replaces the stored resume on an application. Only the
// applicant may replace it; status and cover letter are untouched.
func (s *ApplicationService) UpdateResume(ctx context.Context, p ports.Principal, id string, resume ports.ResumeUpload) (*domain.Application, error) {
	if resume.Content == nil || resume.FileName == "" {
		return nil, fmt.Errorf("%w: resume file is required", domain.ErrValidation)
	}
	if _, ok := allowedResumeTypes[resume.ContentType]; !ok {
		return nil, fmt.Errorf("%w: resume type %q not allowed", domain.ErrValidation, resume.ContentType)
	}

	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != p.ID {
		return nil, domain.ErrForbidden
	}

	ref, err := s.storage.Upload(ctx, resume)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	if ref == nil || ref.FileID == "" {
		return nil, fmt.Errorf("%w: storage returned no file reference", domain.ErrUploadFailed)
	}

	updated, err := s.repo.UpdateResume(ctx, id, *ref)
	if err != nil {
		return nil, err
	}

	// Best-effort cleanup of the replaced blob.
	if app.Resume.FileID != "" {
		if err := s.storage.Delete(ctx, app.Resume.FileID); err != nil {
			s.logger.Warn().Err(err).Str("file_id", app.Resume.FileID).Msg("failed to delete replaced resume")
		}
	}

	return updated, nil
}

// DeleteApplication removes an application. Allowed for the applicant, the
// employer owning the referenced job, or an admin.
func (s *ApplicationService) DeleteApplication(ctx context.Context, p ports.Principal, id string) error {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeView(p, app); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete application %s: %w", id, err)
	}

	s.logger.Info().Str("application_id", id).Str("actor_id", p.ID).Msg("application deleted")
	s.emitAudit(id, domain.AuditActionDeleted, p.ID, "")
	return nil
}

// OpenResume streams a stored resume into w after checking the caller may
// see the application it belongs to.
func (s *ApplicationService) OpenResume(ctx context.Context, p ports.Principal, fileID string, w io.Writer) (*domain.ResumeRef, error) {
	app, err := s.repo.FindByResumeFileID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(p, app); err != nil {
		return nil, err
	}
	if err := s.storage.Download(ctx, fileID, w); err != nil {
		return nil, fmt.Errorf("download resume %s: %w", fileID, err)
	}
	ref := app.Resume
	return &ref, nil
}

// authorizeView enforces who may see (and delete) a record: the applicant,
// the employer owning the referenced job, or an admin.
func (s *ApplicationService) authorizeView(p ports.Principal, app *domain.Application) error {
	switch p.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleJobSeeker:
		if app.ApplicantID == p.ID {
			return nil
		}
	case domain.RoleEmployer:
		if app.JobOwnerID == p.ID {
			return nil
		}
	}
	return domain.ErrForbidden
}

// buildView attaches the denormalized job summary. A missing relation on the
// returned record is patched by fetching the job directly.
func (s *ApplicationService) buildView(ctx context.Context, app *domain.Application) *ports.ApplicationView {
	view := &ports.ApplicationView{Application: app}
	if app.JobID == "" {
		return view
	}

	job, err := s.jobRepo.FindByID(ctx, app.JobID)
	if err != nil {
		s.logger.Warn().Err(err).Str("application_id", app.ID).Str("job_id", app.JobID).Msg("job relation could not be resolved")
		return view
	}
	view.Job = &ports.JobSummary{
		ID:          job.ID,
		Title:       job.Title,
		CompanyName: job.CompanyName,
		Location:    job.Location,
		ExpiredAt:   job.ExpiredAt,
	}
	return view
}

func (s *ApplicationService) emitAudit(id, action, actor, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Emit(domain.AuditEvent{
		EntityType: domain.AuditEntityApplication,
		EntityID:   id,
		Action:     action,
		ActorID:    actor,
		Detail:     detail,
		Timestamp:  time.Now().UTC(),
	})
}

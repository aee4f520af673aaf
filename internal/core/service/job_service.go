package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/api/metrics"
	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100

	// A reserved request id whose job is not yet visible is re-polled this
	// many times before the request is rejected as an in-flight duplicate.
	replayPollAttempts = 3
	replayPollWait     = 50 * time.Millisecond
)

// RequestGuard abstracts the fast-path duplicate-submission guard (Redis).
// A request id already reserved by an earlier request resolves to that
// request's job (or a duplicate-request rejection while its insert is still
// in flight) instead of a second insert. The guard is best effort: when it
// is unavailable the failure is logged and creation proceeds on the store
// lookup alone.
type RequestGuard interface {
	// Reserve marks the request id as seen. It returns false when the id was
	// already reserved by an earlier request.
	Reserve(ctx context.Context, requestID string) (bool, error)
}

type JobService struct {
	repo    ports.JobRepository
	appRepo ports.ApplicationRepository
	guard   RequestGuard
	audit   ports.AuditSink
	logger  zerolog.Logger
}

func NewJobService(
	repo ports.JobRepository,
	appRepo ports.ApplicationRepository,
	guard RequestGuard,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *JobService {
	return &JobService{repo: repo, appRepo: appRepo, guard: guard, audit: audit, logger: logger}
}

// CreateJob creates a job posting. Only employers may create jobs. When the
// request id was already seen, the previously created job is returned
// unchanged and no duplicate is inserted.
func (s *JobService) CreateJob(ctx context.Context, p ports.Principal, input ports.CreateJobInput) (*ports.CreateJobResult, error) {
	if p.Role != domain.RoleEmployer {
		return nil, domain.ErrForbidden
	}

	jobType := domain.JobType(input.JobType)
	if !domain.ValidJobType(jobType) {
		return nil, fmt.Errorf("%w: job type %q", domain.ErrValidation, input.JobType)
	}
	level := domain.ExperienceLevel(input.ExperienceLevel)
	if !domain.ValidExperienceLevel(level) {
		return nil, fmt.Errorf("%w: experience level %q", domain.ErrValidation, input.ExperienceLevel)
	}

	requestID := input.RequestID
	if requestID == "" {
		requestID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	if s.guard != nil {
		fresh, err := s.guard.Reserve(ctx, requestID)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("request_id", requestID).Msg("request guard unavailable, falling back to store lookup")
		case !fresh:
			// An earlier request holds this id: never insert a second job.
			return s.resolveReplay(ctx, requestID)
		}
	}

	// Check-then-act: two near-simultaneous requests with the same id can
	// both pass the guard when Redis is down and both miss here. Accepted
	// residual gap.
	existing, err := s.repo.FindByRequestID(ctx, requestID)
	if err == nil && existing != nil {
		s.logger.Info().Str("request_id", requestID).Str("job_id", existing.ID).Msg("idempotent replay")
		metrics.JobsIdempotentReplaysTotal.Inc()
		return &ports.CreateJobResult{Job: existing, AlreadyExisted: true}, nil
	}

	requirements := input.Requirements
	if requirements == "" {
		requirements = domain.DefaultRequirements
	}
	industry := input.Industry
	if industry == "" {
		industry = domain.DefaultIndustry
	}

	now := time.Now().UTC()
	job := &domain.Job{
		Title:           input.Title,
		Description:     input.Description,
		Requirements:    requirements,
		Salary:          input.Salary,
		Location:        input.Location,
		JobType:         jobType,
		ExperienceLevel: level,
		CompanyName:     input.CompanyName,
		Industry:        industry,
		ExpiredAt:       input.ExpiredAt,
		OwnerID:         p.ID,
		RequestID:       requestID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.logger.Info().Str("job_id", job.ID).Str("owner_id", p.ID).Str("request_id", requestID).Msg("job created")
	metrics.JobsCreatedTotal.WithLabelValues(string(jobType)).Inc()
	s.emitAudit(domain.AuditEntityJob, job.ID, domain.AuditActionCreated, p.ID, job.Title)

	return &ports.CreateJobResult{Job: job}, nil
}

// resolveReplay answers a create whose request id the guard has already seen.
// Usually the earlier request's job is visible and is returned verbatim; when
// its insert is still in flight the lookup is re-polled briefly, then the
// request is rejected rather than inserting a duplicate.
func (s *JobService) resolveReplay(ctx context.Context, requestID string) (*ports.CreateJobResult, error) {
	for attempt := 0; attempt < replayPollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(replayPollWait):
			}
		}

		existing, err := s.repo.FindByRequestID(ctx, requestID)
		if err != nil && !errors.Is(err, domain.ErrJobNotFound) {
			return nil, err
		}
		if existing != nil {
			s.logger.Info().Str("request_id", requestID).Str("job_id", existing.ID).Msg("idempotent replay")
			metrics.JobsIdempotentReplaysTotal.Inc()
			return &ports.CreateJobResult{Job: existing, AlreadyExisted: true}, nil
		}
	}

	s.logger.Warn().Str("request_id", requestID).Msg("request id reserved but job not yet visible")
	return nil, domain.ErrDuplicateRequest
}

// ListJobs returns a page of jobs. Employers only see their own postings;
// job seekers and admins see the full catalog.
func (s *JobService) ListJobs(ctx context.Context, p ports.Principal, input ports.ListJobsInput) (*ports.ListJobsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := ports.ListJobsFilter{Page: page, Limit: limit}
	if p.Role == domain.RoleEmployer {
		filter.OwnerID = p.ID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list jobs")
		return nil, err
	}
	if items == nil {
		items = []*domain.Job{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListJobsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetJob returns a single job. Employers may only read their own postings.
func (s *JobService) GetJob(ctx context.Context, p ports.Principal, jobID string) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if p.Role == domain.RoleEmployer && job.OwnerID != p.ID {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

// UpdateJob applies a patch to a job owned by the calling employer. The
// patch type carries only mutable fields, so owner and request id cannot
// change.
func (s *JobService) UpdateJob(ctx context.Context, p ports.Principal, jobID string, patch ports.JobPatch) (*domain.Job, error) {
	if p.Role != domain.RoleEmployer {
		return nil, domain.ErrForbidden
	}

	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.OwnerID != p.ID {
		return nil, domain.ErrForbidden
	}

	if patch.JobType != nil && !domain.ValidJobType(*patch.JobType) {
		return nil, fmt.Errorf("%w: job type %q", domain.ErrValidation, *patch.JobType)
	}
	if patch.ExperienceLevel != nil && !domain.ValidExperienceLevel(*patch.ExperienceLevel) {
		return nil, fmt.Errorf("%w: experience level %q", domain.ErrValidation, *patch.ExperienceLevel)
	}

	updated, err := s.repo.Update(ctx, jobID, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("job_id", jobID).Msg("failed to update job")
		return nil, err
	}
	return updated, nil
}

// DeleteJob removes a job owned by the calling employer, cascading to all
// applications referencing it. Applications are deleted first; any single
// failure aborts the whole operation so the job is never left with its
// dependents in an ambiguous state.
func (s *JobService) DeleteJob(ctx context.Context, p ports.Principal, jobID string) error {
	if p.Role != domain.RoleEmployer {
		return domain.ErrForbidden
	}

	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.OwnerID != p.ID {
		return domain.ErrForbidden
	}

	apps, err := s.appRepo.List(ctx, ports.ListApplicationsFilter{JobID: jobID})
	if err != nil {
		return fmt.Errorf("delete job %s: list applications: %w", jobID, err)
	}

	for _, app := range apps {
		if err := s.appRepo.Delete(ctx, app.ID); err != nil {
			s.logger.Error().Err(err).Str("job_id", jobID).Str("application_id", app.ID).
				Msg("cascade aborted, dependent application could not be deleted")
			return fmt.Errorf("delete job %s: delete application %s: %w", jobID, app.ID, err)
		}
		s.logger.Debug().Str("job_id", jobID).Str("application_id", app.ID).Msg("cascaded application delete")
	}

	if err := s.repo.Delete(ctx, jobID); err != nil {
		return fmt.Errorf("delete job %s: %w", jobID, err)
	}

	s.logger.Info().Str("job_id", jobID).Int("applications_deleted", len(apps)).Msg("job deleted")
	s.emitAudit(domain.AuditEntityJob, jobID, domain.AuditActionDeleted, p.ID,
		fmt.Sprintf("cascaded %d applications", len(apps)))
	return nil
}

func (s *JobService) emitAudit(entity, id, action, actor, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Emit(domain.AuditEvent{
		EntityType: entity,
		EntityID:   id,
		Action:     action,
		ActorID:    actor,
		Detail:     detail,
		Timestamp:  time.Now().UTC(),
	})
}

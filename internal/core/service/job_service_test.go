package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	jobs      map[string]*domain.Job
	seq       int
	createErr error
	deleteErr error

	// pending becomes visible once FindByRequestID has been called
	// revealAfter times, simulating an in-flight insert landing.
	pending              *domain.Job
	revealAfter          int
	findByRequestIDCalls int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	if j == nil {
		return nil
	}
	clone := *j
	return &clone
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	job.ID = "job_" + strconv.Itoa(r.seq)
	r.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) FindByRequestID(_ context.Context, requestID string) (*domain.Job, error) {
	r.findByRequestIDCalls++
	if r.pending != nil && r.findByRequestIDCalls >= r.revealAfter {
		r.jobs[r.pending.ID] = r.pending
		r.pending = nil
	}
	for _, j := range r.jobs {
		if j.RequestID == requestID {
			return cloneJob(j), nil
		}
	}
	return nil, domain.ErrJobNotFound
}

// List applies the same filters the real Mongo repo would use.
func (r *stubJobRepo) List(_ context.Context, f ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	var matched []*domain.Job
	for _, j := range r.jobs {
		if f.OwnerID != "" && j.OwnerID != f.OwnerID {
			continue
		}
		matched = append(matched, cloneJob(j))
	}

	total := int64(len(matched))

	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Job{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubJobRepo) Update(_ context.Context, id string, patch ports.JobPatch) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if patch.Title != nil {
		j.Title = *patch.Title
	}
	if patch.Description != nil {
		j.Description = *patch.Description
	}
	if patch.Requirements != nil {
		j.Requirements = *patch.Requirements
	}
	if patch.Salary != nil {
		j.Salary = *patch.Salary
	}
	if patch.Location != nil {
		j.Location = *patch.Location
	}
	if patch.JobType != nil {
		j.JobType = *patch.JobType
	}
	if patch.ExperienceLevel != nil {
		j.ExperienceLevel = *patch.ExperienceLevel
	}
	if patch.CompanyName != nil {
		j.CompanyName = *patch.CompanyName
	}
	if patch.Industry != nil {
		j.Industry = *patch.Industry
	}
	if patch.ExpiredAt != nil {
		j.ExpiredAt = *patch.ExpiredAt
	}
	j.UpdatedAt = time.Now().UTC()
	return cloneJob(j), nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubGuard struct {
	fresh bool
	err   error
	calls int
}

func (g *stubGuard) Reserve(_ context.Context, _ string) (bool, error) {
	g.calls++
	return g.fresh, g.err
}

type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Emit(event domain.AuditEvent) {
	a.events = append(a.events, event)
}

func employer(id string) ports.Principal {
	return ports.Principal{ID: id, Role: domain.RoleEmployer}
}

func jobSeeker(id string) ports.Principal {
	return ports.Principal{ID: id, Role: domain.RoleJobSeeker}
}

func admin(id string) ports.Principal {
	return ports.Principal{ID: id, Role: domain.RoleAdmin}
}

func minimalJobInput() ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:           "Backend Engineer",
		Description:     "Build APIs",
		Salary:          85000,
		Location:        "Remote",
		JobType:         "full-time",
		ExperienceLevel: "mid",
		CompanyName:     "Acme",
		ExpiredAt:       time.Now().UTC().AddDate(0, 1, 0),
	}
}

func newJobService(repo *stubJobRepo, appRepo *stubApplicationRepo) (*JobService, *stubAudit) {
	audit := &stubAudit{}
	return NewJobService(repo, appRepo, &stubGuard{fresh: true}, audit, discardLogger), audit
}

// ---------------------------------------------------------------------------
// CreateJob tests
// ---------------------------------------------------------------------------

func TestJobService_Create_Success(t *testing.T) {
	repo := newStubJobRepo()
	svc, audit := newJobService(repo, newStubApplicationRepo())

	result, err := svc.CreateJob(context.Background(), employer("emp_1"), minimalJobInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Job.ID == "" {
		t.Error("expected job id to be assigned")
	}
	if result.Job.OwnerID != "emp_1" {
		t.Errorf("expected owner emp_1, got %q", result.Job.OwnerID)
	}
	if result.AlreadyExisted {
		t.Error("expected AlreadyExisted=false for new job")
	}
	if result.Job.RequestID == "" {
		t.Error("expected a request id to be generated")
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditActionCreated {
		t.Errorf("expected one created audit event, got %+v", audit.events)
	}
}

func TestJobService_Create_AppliesDefaults(t *testing.T) {
	repo := newStubJobRepo()
	svc, _ := newJobService(repo, newStubApplicationRepo())

	result, err := svc.CreateJob(context.Background(), employer("emp_1"), minimalJobInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.jobs[result.Job.ID]
	if stored.Requirements != domain.DefaultRequirements {
		t.Errorf("expected default requirements %q, got %q", domain.DefaultRequirements, stored.Requirements)
	}
	if stored.Industry != domain.DefaultIndustry {
		t.Errorf("expected default industry %q, got %q", domain.DefaultIndustry, stored.Industry)
	}
}

func TestJobService_Create_KeepsProvidedFields(t *testing.T) {
	repo := newStubJobRepo()
	svc, _ := newJobService(repo, newStubApplicationRepo())

	input := minimalJobInput()
	input.Requirements = "5 years of Go"
	input.Industry = "Finance"

	result, _ := svc.CreateJob(context.Background(), employer("emp_1"), input)

	stored := repo.jobs[result.Job.ID]
	if stored.Requirements != "5 years of Go" {
		t.Errorf("requirements overwritten: %q", stored.Requirements)
	}
	if stored.Industry != "Finance" {
		t.Errorf("industry overwritten: %q", stored.Industry)
	}
}

func TestJobService_Create_OnlyEmployers(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())

	for _, p := range []ports.Principal{jobSeeker("js_1"), admin("adm_1")} {
		if _, err := svc.CreateJob(context.Background(), p, minimalJobInput()); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("role %s: expected ErrForbidden, got %v", p.Role, err)
		}
	}
}

func TestJobService_Create_InvalidEnums(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())

	input := minimalJobInput()
	input.JobType = "gig"
	if _, err := svc.CreateJob(context.Background(), employer("emp_1"), input); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad job type: expected ErrValidation, got %v", err)
	}

	input = minimalJobInput()
	input.ExperienceLevel = "guru"
	if _, err := svc.CreateJob(context.Background(), employer("emp_1"), input); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad experience level: expected ErrValidation, got %v", err)
	}
}

func TestJobService_Create_IdempotentReplay(t *testing.T) {
	repo := newStubJobRepo()
	svc, _ := newJobService(repo, newStubApplicationRepo())

	input := minimalJobInput()
	input.RequestID = "req-abc-123"

	first, err := svc.CreateJob(context.Background(), employer("emp_1"), input)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second, err := svc.CreateJob(context.Background(), employer("emp_1"), input)
	if err != nil {
		t.Fatalf("second create (replay) failed: %v", err)
	}

	if second.Job.ID != first.Job.ID {
		t.Errorf("replay must return the same job: got %q, want %q", second.Job.ID, first.Job.ID)
	}
	if !second.AlreadyExisted {
		t.Error("replay must set AlreadyExisted=true")
	}
	if len(repo.jobs) != 1 {
		t.Errorf("expected 1 stored job, got %d", len(repo.jobs))
	}
}

func TestJobService_Create_GuardFailureFallsBackToStore(t *testing.T) {
	repo := newStubJobRepo()
	guard := &stubGuard{err: errors.New("redis down")}
	svc := NewJobService(repo, newStubApplicationRepo(), guard, nil, discardLogger)

	if _, err := svc.CreateJob(context.Background(), employer("emp_1"), minimalJobInput()); err != nil {
		t.Fatalf("guard failure must not fail creation: %v", err)
	}
	if guard.calls != 1 {
		t.Errorf("expected guard to be consulted once, got %d", guard.calls)
	}
}

func TestJobService_Create_ReservedIDReturnsExistingJob(t *testing.T) {
	repo := newStubJobRepo()
	input := minimalJobInput()
	input.RequestID = "req-held"

	first, err := NewJobService(repo, newStubApplicationRepo(), &stubGuard{fresh: true}, nil, discardLogger).
		CreateJob(context.Background(), employer("emp_1"), input)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// A retry of the same request hits an already-held reservation.
	svc := NewJobService(repo, newStubApplicationRepo(), &stubGuard{fresh: false}, nil, discardLogger)
	second, err := svc.CreateJob(context.Background(), employer("emp_1"), input)
	if err != nil {
		t.Fatalf("retry with held reservation failed: %v", err)
	}
	if second.Job.ID != first.Job.ID {
		t.Errorf("expected the original job %q, got %q", first.Job.ID, second.Job.ID)
	}
	if !second.AlreadyExisted {
		t.Error("retry must set AlreadyExisted=true")
	}
	if len(repo.jobs) != 1 {
		t.Errorf("expected 1 stored job, got %d", len(repo.jobs))
	}
}

func TestJobService_Create_ReservedIDWithInvisibleJobRejected(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, newStubApplicationRepo(), &stubGuard{fresh: false}, nil, discardLogger)

	input := minimalJobInput()
	input.RequestID = "req-in-flight"

	_, err := svc.CreateJob(context.Background(), employer("emp_1"), input)
	if !errors.Is(err, domain.ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
	if len(repo.jobs) != 0 {
		t.Errorf("no job may be inserted for a reserved id, got %d", len(repo.jobs))
	}
	if repo.findByRequestIDCalls != replayPollAttempts {
		t.Errorf("expected %d lookup attempts, got %d", replayPollAttempts, repo.findByRequestIDCalls)
	}
}

func TestJobService_Create_ReservedIDBecomesVisibleWhilePolling(t *testing.T) {
	repo := newStubJobRepo()
	repo.pending = &domain.Job{ID: "job_inflight", RequestID: "req-landing", OwnerID: "emp_1"}
	repo.revealAfter = 2
	svc := NewJobService(repo, newStubApplicationRepo(), &stubGuard{fresh: false}, nil, discardLogger)

	input := minimalJobInput()
	input.RequestID = "req-landing"

	result, err := svc.CreateJob(context.Background(), employer("emp_1"), input)
	if err != nil {
		t.Fatalf("expected the in-flight job to resolve, got %v", err)
	}
	if result.Job.ID != "job_inflight" {
		t.Errorf("expected job_inflight, got %q", result.Job.ID)
	}
	if !result.AlreadyExisted {
		t.Error("resolved replay must set AlreadyExisted=true")
	}
	if len(repo.jobs) != 1 {
		t.Errorf("expected only the in-flight job stored, got %d", len(repo.jobs))
	}
}

func TestJobService_Create_RepoError(t *testing.T) {
	repo := newStubJobRepo()
	repo.createErr = errors.New("db unavailable")
	svc, _ := newJobService(repo, newStubApplicationRepo())

	if _, err := svc.CreateJob(context.Background(), employer("emp_1"), minimalJobInput()); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// ListJobs tests
// ---------------------------------------------------------------------------

func seedJob(t *testing.T, svc *JobService, ownerID string) *domain.Job {
	t.Helper()
	input := minimalJobInput()
	input.RequestID = fmt.Sprintf("req-%s-%d", ownerID, time.Now().UnixNano())
	result, err := svc.CreateJob(context.Background(), employer(ownerID), input)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return result.Job
}

func TestJobService_List_EmployerSeesOwnOnly(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())

	seedJob(t, svc, "emp_1")
	seedJob(t, svc, "emp_2")

	res, err := svc.ListJobs(context.Background(), employer("emp_1"), ports.ListJobsInput{Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 {
		t.Errorf("employer: expected 1 total, got %d", res.Total)
	}
	if res.Items[0].OwnerID != "emp_1" {
		t.Errorf("employer must only see own jobs, got owner %q", res.Items[0].OwnerID)
	}
}

func TestJobService_List_SeekerSeesAll(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())

	seedJob(t, svc, "emp_1")
	seedJob(t, svc, "emp_2")

	res, err := svc.ListJobs(context.Background(), jobSeeker("js_1"), ports.ListJobsInput{Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 {
		t.Errorf("seeker: expected 2 total, got %d", res.Total)
	}
}

func TestJobService_List_DefaultAndCappedLimit(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())

	res, err := svc.ListJobs(context.Background(), admin("adm_1"), ports.ListJobsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Limit != 25 {
		t.Errorf("expected default limit 25, got %d", res.Limit)
	}
	if res.Page != 1 {
		t.Errorf("expected default page 1, got %d", res.Page)
	}

	res, err = svc.ListJobs(context.Background(), admin("adm_1"), ports.ListJobsInput{Limit: 999, Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Limit != 100 {
		t.Errorf("expected limit capped at 100, got %d", res.Limit)
	}
}

func TestJobService_List_PaginationMath(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())

	for i := 0; i < 5; i++ {
		seedJob(t, svc, "emp_1")
	}

	res, err := svc.ListJobs(context.Background(), admin("adm_1"), ports.ListJobsInput{Page: 1, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 5 {
		t.Errorf("total: expected 5, got %d", res.Total)
	}
	if res.TotalPages != 3 {
		t.Errorf("total_pages: expected 3, got %d", res.TotalPages)
	}
	if len(res.Items) != 2 {
		t.Errorf("items: expected 2, got %d", len(res.Items))
	}
}

// ---------------------------------------------------------------------------
// GetJob tests
// ---------------------------------------------------------------------------

func TestJobService_Get_SeekerSeesAnyJob(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())
	job := seedJob(t, svc, "emp_1")

	if _, err := svc.GetJob(context.Background(), jobSeeker("js_1"), job.ID); err != nil {
		t.Fatalf("seeker should see any job, got error: %v", err)
	}
}

func TestJobService_Get_EmployerCannotSeeOthersJob(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())
	job := seedJob(t, svc, "emp_1")

	if _, err := svc.GetJob(context.Background(), employer("emp_2"), job.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for foreign employer, got %v", err)
	}
}

func TestJobService_Get_NotFound(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())

	if _, err := svc.GetJob(context.Background(), admin("adm_1"), "missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateJob tests
// ---------------------------------------------------------------------------

func TestJobService_Update_Success(t *testing.T) {
	repo := newStubJobRepo()
	svc, _ := newJobService(repo, newStubApplicationRepo())
	job := seedJob(t, svc, "emp_1")

	title := "Senior Backend Engineer"
	salary := 120000.0
	updated, err := svc.UpdateJob(context.Background(), employer("emp_1"), job.ID, ports.JobPatch{
		Title:  &title,
		Salary: &salary,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != title {
		t.Errorf("title: expected %q, got %q", title, updated.Title)
	}
	if updated.Salary != salary {
		t.Errorf("salary: expected %v, got %v", salary, updated.Salary)
	}
	if updated.Description != job.Description {
		t.Errorf("untouched field changed: %q", updated.Description)
	}
}

func TestJobService_Update_OwnershipEnforced(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())
	job := seedJob(t, svc, "emp_1")

	title := "hijacked"
	if _, err := svc.UpdateJob(context.Background(), employer("emp_2"), job.ID, ports.JobPatch{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for foreign employer, got %v", err)
	}
	if _, err := svc.UpdateJob(context.Background(), jobSeeker("js_1"), job.ID, ports.JobPatch{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for seeker, got %v", err)
	}
}

func TestJobService_Update_InvalidEnum(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())
	job := seedJob(t, svc, "emp_1")

	bad := domain.JobType("gig")
	if _, err := svc.UpdateJob(context.Background(), employer("emp_1"), job.ID, ports.JobPatch{JobType: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeleteJob tests
// ---------------------------------------------------------------------------

func TestJobService_Delete_CascadesApplications(t *testing.T) {
	jobRepo := newStubJobRepo()
	appRepo := newStubApplicationRepo()
	svc, audit := newJobService(jobRepo, appRepo)

	job := seedJob(t, svc, "emp_1")
	seedApplication(appRepo, job.ID, "emp_1", "js_1")
	seedApplication(appRepo, job.ID, "emp_1", "js_2")
	other := seedJob(t, svc, "emp_1")
	seedApplication(appRepo, other.ID, "emp_1", "js_1")

	if err := svc.DeleteJob(context.Background(), employer("emp_1"), job.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := jobRepo.jobs[job.ID]; ok {
		t.Error("job must be deleted")
	}
	for _, app := range appRepo.apps {
		if app.JobID == job.ID {
			t.Errorf("application %s must be cascade-deleted", app.ID)
		}
	}
	if len(appRepo.apps) != 1 {
		t.Errorf("applications of other jobs must survive, got %d left", len(appRepo.apps))
	}
	if audit.events[len(audit.events)-1].Action != domain.AuditActionDeleted {
		t.Error("expected a deleted audit event")
	}
}

func TestJobService_Delete_AbortsWhenCascadeFails(t *testing.T) {
	jobRepo := newStubJobRepo()
	appRepo := newStubApplicationRepo()
	svc, _ := newJobService(jobRepo, appRepo)

	job := seedJob(t, svc, "emp_1")
	seedApplication(appRepo, job.ID, "emp_1", "js_1")
	appRepo.deleteErr = errors.New("db unavailable")

	err := svc.DeleteJob(context.Background(), employer("emp_1"), job.ID)
	if err == nil {
		t.Fatal("expected error when dependent deletion fails")
	}
	if _, ok := jobRepo.jobs[job.ID]; !ok {
		t.Error("job must remain when cascade aborts")
	}
}

func TestJobService_Delete_OwnershipEnforced(t *testing.T) {
	svc, _ := newJobService(newStubJobRepo(), newStubApplicationRepo())
	job := seedJob(t, svc, "emp_1")

	if err := svc.DeleteJob(context.Background(), employer("emp_2"), job.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

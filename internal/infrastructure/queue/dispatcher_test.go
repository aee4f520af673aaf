package queue

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *recordingAuditRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *recordingAuditRepo) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitForEvents(t *testing.T, repo *recordingAuditRepo, want int) []domain.AuditEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if events := repo.snapshot(); len(events) >= want {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, got %d", want, len(repo.snapshot()))
	return nil
}

func TestDispatcher_DeliversAllEvents(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 20; i++ {
		d.Emit(domain.AuditEvent{
			EntityType: domain.AuditEntityJob,
			EntityID:   "job_" + strconv.Itoa(i),
			Action:     domain.AuditActionCreated,
		})
	}

	waitForEvents(t, repo, 20)
}

func TestDispatcher_PreservesPerEntityOrdering(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []string{domain.AuditActionCreated, domain.AuditActionStatusChanged, domain.AuditActionDeleted}
	for _, action := range actions {
		d.Emit(domain.AuditEvent{
			EntityType: domain.AuditEntityApplication,
			EntityID:   "app_1",
			Action:     action,
		})
	}

	events := waitForEvents(t, repo, 3)

	var got []string
	for _, e := range events {
		if e.EntityID == "app_1" {
			got = append(got, e.Action)
		}
	}
	for i, action := range actions {
		if got[i] != action {
			t.Fatalf("ordering broken at %d: expected %s, got %s", i, action, got[i])
		}
	}
}

func TestDispatcher_SameEntityAlwaysSameWorker(t *testing.T) {
	d := NewDispatcher(8, &recordingAuditRepo{}, zerolog.Nop())

	first := d.shardIndex("app_42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("app_42") != first {
			t.Fatal("shard index must be deterministic per entity id")
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingAuditRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookmanager/catalog-api/internal/core/domain"
)

type stubAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	done   chan struct{}
	want   int
}

func newStubAuditRepo(want int) *stubAuditRepo {
	return &stubAuditRepo{done: make(chan struct{}), want: want}
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func (r *stubAuditRepo) wait(t *testing.T) []domain.AuthEvent {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit writes")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuthEvent(nil), r.events...)
}

func TestDispatcher_PersistsAllEvents(t *testing.T) {
	repo := newStubAuditRepo(3)
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuthEvent{Username: "alice", Action: domain.AuditActionLogin, Outcome: domain.AuditOutcomeSuccess})
	d.Record(domain.AuthEvent{Username: "bob", Action: domain.AuditActionRegister, Outcome: domain.AuditOutcomeSuccess})
	d.Record(domain.AuthEvent{Username: "alice", Action: domain.AuditActionLogin, Outcome: domain.AuditOutcomeFailure})

	events := repo.wait(t)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	const n = 20
	repo := newStubAuditRepo(n)
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	outcomes := make([]string, n)
	for i := range outcomes {
		if i%2 == 0 {
			outcomes[i] = domain.AuditOutcomeSuccess
		} else {
			outcomes[i] = domain.AuditOutcomeFailure
		}
		d.Record(domain.AuthEvent{Username: "alice", Action: domain.AuditActionLogin, Outcome: outcomes[i]})
	}

	events := repo.wait(t)
	for i, event := range events {
		if event.Outcome != outcomes[i] {
			t.Fatalf("event %d out of order: expected %s, got %s", i, outcomes[i], event.Outcome)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newStubAuditRepo(1), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

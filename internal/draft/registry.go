package draft

import (
	"sync"
	"time"

	appErrors "github.com/a1k2f3/sellercenter-buybot/internal/errors"
	"github.com/google/uuid"
)

// Registry keeps live drafts in process memory. A draft is reachable only by
// the session that opened it; anything else sees not-found.
type Registry struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*Draft
	ttl    time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		drafts: make(map[uuid.UUID]*Draft),
		ttl:    ttl,
	}
}

func (r *Registry) Put(d *Draft) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()
	r.drafts[d.ID] = d
}

func (r *Registry) Get(id, sessionID uuid.UUID) (*Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()

	d, ok := r.drafts[id]
	if !ok || d.SessionID != sessionID {
		return nil, appErrors.NotFoundError("Draft not found")
	}

	return d, nil
}

func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, id)
}

// Discard removes the draft unless a submission is in flight.
func (r *Registry) Discard(id, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[id]
	if !ok || d.SessionID != sessionID {
		return appErrors.NotFoundError("Draft not found")
	}

	d.mu.Lock()
	submitting := d.submitting
	d.mu.Unlock()

	if submitting {
		return appErrors.ConflictError("A submission is already in progress for this draft")
	}

	delete(r.drafts, id)

	return nil
}

// BeginSubmit marks the draft as submitting. A second submit while one is in
// flight is rejected, keeping submission single-flight per draft.
func (r *Registry) BeginSubmit(id, sessionID uuid.UUID) (*Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[id]
	if !ok || d.SessionID != sessionID {
		return nil, appErrors.NotFoundError("Draft not found")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.submitting {
		return nil, appErrors.ConflictError("A submission is already in progress for this draft")
	}

	d.submitting = true

	return d, nil
}

// EndSubmit returns the draft to idle after a failed submission, with all
// field values and staged media preserved.
func (r *Registry) EndSubmit(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.drafts[id]; ok {
		d.mu.Lock()
		d.submitting = false
		d.mu.Unlock()
	}
}

// Submitting reports the draft's pipeline state for the busy indicator.
// Callers hold the draft lock.
func (d *Draft) Submitting() bool {
	return d.submitting
}

func (r *Registry) sweepLocked() {
	if r.ttl <= 0 {
		return
	}

	cutoff := time.Now().Add(-r.ttl)

	for id, d := range r.drafts {
		d.mu.Lock()
		stale := d.UpdatedAt.Before(cutoff) && !d.submitting
		d.mu.Unlock()

		if stale {
			delete(r.drafts, id)
		}
	}
}

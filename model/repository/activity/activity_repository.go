package activity

import (
	"fmt"
	"sync"
	"sync/atomic"

	apperrors "mergington.GO/core/errors"
	"mergington.GO/model/entity"
	"mergington.GO/model/seed"
)

// record guards one activity. Signup and Remove hold mu across check and mutation.
type record struct {
	mu       sync.Mutex
	activity entity.Activity
}

// ActivityRepository is the in-memory registry of activities. The set of activities is
// fixed at construction; only participant lists change afterwards.
type ActivityRepository struct {
	names   []string
	records map[string]*record
	version atomic.Uint64
}

// NewActivityRepository builds a registry from acts. The input is validated and copied.
func NewActivityRepository(acts []entity.Activity) (*ActivityRepository, error) {
	if err := seed.Validate(acts); err != nil {
		return nil, fmt.Errorf("activity repository: %w", err)
	}
	r := &ActivityRepository{
		names:   make([]string, 0, len(acts)),
		records: make(map[string]*record, len(acts)),
	}
	for _, a := range acts {
		r.names = append(r.names, a.Name)
		r.records[a.Name] = &record{activity: a.Clone()}
	}
	return r, nil
}

// NewDefaultActivityRepository builds a registry from the built-in seed.
func NewDefaultActivityRepository() (*ActivityRepository, error) {
	acts, err := seed.Default()
	if err != nil {
		return nil, err
	}
	return NewActivityRepository(acts)
}

// List returns a copy of every activity. Each activity is copied under its own lock, so
// the result is consistent per activity but not across activities.
func (r *ActivityRepository) List() entity.Catalog {
	c := entity.Catalog{
		Names: make([]string, len(r.names)),
		Items: make(map[string]entity.Activity, len(r.names)),
	}
	copy(c.Names, r.names)
	for _, name := range r.names {
		rec := r.records[name]
		rec.mu.Lock()
		c.Items[name] = rec.activity.Clone()
		rec.mu.Unlock()
	}
	return c
}

// Get returns a copy of one activity.
func (r *ActivityRepository) Get(name string) (entity.Activity, bool) {
	rec, ok := r.records[name]
	if !ok {
		return entity.Activity{}, false
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.activity.Clone(), true
}

// Names returns activity names in seed order.
func (r *ActivityRepository) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Version increases after every successful Signup or Remove.
func (r *ActivityRepository) Version() uint64 {
	return r.version.Load()
}

// Signup appends email to the participants of the named activity. Capacity is not
// checked. It returns the participant count after the change.
func (r *ActivityRepository) Signup(name, email string) (int, error) {
	rec, ok := r.records[name]
	if !ok {
		return 0, apperrors.NewActivityNotFoundError(name)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.activity.HasParticipant(email) {
		return len(rec.activity.Participants), apperrors.NewAlreadySignedUpError(name, email)
	}
	rec.activity.Participants = append(rec.activity.Participants, email)
	r.version.Add(1)
	return len(rec.activity.Participants), nil
}

// Remove deletes email from the participants of the named activity, keeping the order of
// the remaining entries. It returns the participant count after the change.
func (r *ActivityRepository) Remove(name, email string) (int, error) {
	rec, ok := r.records[name]
	if !ok {
		return 0, apperrors.NewActivityNotFoundError(name)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	ps := rec.activity.Participants
	for i, p := range ps {
		if p != email {
			continue
		}
		next := make([]string, 0, len(ps)-1)
		next = append(next, ps[:i]...)
		next = append(next, ps[i+1:]...)
		rec.activity.Participants = next
		r.version.Add(1)
		return len(next), nil
	}
	return len(ps), apperrors.NewParticipantNotFoundError(name, email)
}

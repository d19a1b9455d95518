// Package alert holds the durable keyword-alert registry and the incremental
// check cycle: fetch newest posts, match keywords, drop already-seen items,
// and accumulate match counters. Persistence happens exactly once per cycle.
package alert

import (
	"time"

	"github.com/google/uuid"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/pkg/store"
)

const (
	// AlertsKey is the store document holding all alert definitions.
	AlertsKey = "alerts"
	// SeenKey is the store document holding the seen-set key list.
	SeenKey = "seen"
)

// Registry persists keyword-alert definitions.
type Registry struct {
	store *store.Store
	now   func() time.Time
}

// NewRegistry creates a Registry over st.
func NewRegistry(st *store.Store) *Registry {
	return &Registry{store: st, now: time.Now}
}

// List returns all alerts, empty when none are stored yet.
func (r *Registry) List() []domain.KeywordAlert {
	var alerts []domain.KeywordAlert
	r.store.Load(AlertsKey, &alerts)
	return alerts
}

// SaveAll overwrites the stored alert set. The check cycle calls this once at
// the end, never per community.
func (r *Registry) SaveAll(alerts []domain.KeywordAlert) error {
	return r.store.Save(AlertsKey, alerts)
}

// Add creates and persists a new enabled alert.
func (r *Registry) Add(keywords, communities []string) (domain.KeywordAlert, error) {
	if err := domain.ValidateAlertInput(keywords, communities); err != nil {
		return domain.KeywordAlert{}, err
	}
	a := domain.KeywordAlert{
		ID:          uuid.NewString(),
		Keywords:    keywords,
		Communities: communities,
		Enabled:     true,
		CreatedAt:   r.now().UTC(),
	}
	alerts := append(r.List(), a)
	if err := r.SaveAll(alerts); err != nil {
		return domain.KeywordAlert{}, err
	}
	return a, nil
}

// SetEnabled flips the enabled flag for the alert with the given id.
func (r *Registry) SetEnabled(id string, enabled bool) (domain.KeywordAlert, error) {
	alerts := r.List()
	for i := range alerts {
		if alerts[i].ID == id {
			alerts[i].Enabled = enabled
			if err := r.SaveAll(alerts); err != nil {
				return domain.KeywordAlert{}, err
			}
			return alerts[i], nil
		}
	}
	return domain.KeywordAlert{}, domain.ErrAlertNotFound
}

// Remove deletes the alert with the given id.
func (r *Registry) Remove(id string) error {
	alerts := r.List()
	kept := alerts[:0]
	found := false
	for _, a := range alerts {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return domain.ErrAlertNotFound
	}
	return r.SaveAll(kept)
}

// Package schedule tracks posts the operator plans to publish manually. The
// tool cannot post to Reddit itself; dueNow is advisory and the operator
// confirms publication via the mark-posted transition.
package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/nikkaroraa/reddit-scout/engine/domain"
	"github.com/nikkaroraa/reddit-scout/pkg/store"
)

// Key is the store document holding all scheduled posts.
const Key = "scheduled"

// Tracker persists scheduled posts and enforces the pending -> posted |
// cancelled state machine.
type Tracker struct {
	store *store.Store
	now   func() time.Time
}

// NewTracker creates a Tracker over st.
func NewTracker(st *store.Store) *Tracker {
	return &Tracker{store: st, now: time.Now}
}

// List returns all scheduled posts, any status.
func (t *Tracker) List() []domain.ScheduledPost {
	var posts []domain.ScheduledPost
	t.store.Load(Key, &posts)
	return posts
}

// Add creates a pending scheduled post.
func (t *Tracker) Add(community, title, content string, scheduledAt time.Time) (domain.ScheduledPost, error) {
	if err := domain.ValidateScheduledInput(community, title); err != nil {
		return domain.ScheduledPost{}, err
	}
	p := domain.ScheduledPost{
		ID:          uuid.NewString(),
		Community:   community,
		Title:       title,
		Content:     content,
		ScheduledAt: scheduledAt.UTC(),
		CreatedAt:   t.now().UTC(),
		Status:      domain.SchedulePending,
	}
	posts := append(t.List(), p)
	if err := t.store.Save(Key, posts); err != nil {
		return domain.ScheduledPost{}, err
	}
	return p, nil
}

// DueNow returns pending posts whose scheduled time has passed. Cancelled and
// posted entries never come back, regardless of their scheduled time.
func (t *Tracker) DueNow() []domain.ScheduledPost {
	now := t.now().UTC()
	var due []domain.ScheduledPost
	for _, p := range t.List() {
		if p.Status == domain.SchedulePending && !p.ScheduledAt.After(now) {
			due = append(due, p)
		}
	}
	return due
}

// Cancel transitions a pending post to cancelled. Terminal states reject
// further transitions.
func (t *Tracker) Cancel(id string) (domain.ScheduledPost, error) {
	return t.transition(id, func(p *domain.ScheduledPost) {
		now := t.now().UTC()
		p.Status = domain.ScheduleCancelled
		p.CancelledAt = &now
	})
}

// MarkPosted transitions a pending post to posted, recording the external URL
// the operator published it at.
func (t *Tracker) MarkPosted(id, externalURL string) (domain.ScheduledPost, error) {
	return t.transition(id, func(p *domain.ScheduledPost) {
		now := t.now().UTC()
		p.Status = domain.SchedulePosted
		p.PostedAt = &now
		p.ExternalURL = externalURL
	})
}

func (t *Tracker) transition(id string, apply func(*domain.ScheduledPost)) (domain.ScheduledPost, error) {
	posts := t.List()
	for i := range posts {
		if posts[i].ID != id {
			continue
		}
		if posts[i].Status != domain.SchedulePending {
			return domain.ScheduledPost{}, domain.ErrNotPending
		}
		apply(&posts[i])
		if err := t.store.Save(Key, posts); err != nil {
			return domain.ScheduledPost{}, err
		}
		return posts[i], nil
	}
	return domain.ScheduledPost{}, domain.ErrPostNotFound
}

package feed

import (
	"log/slog"
	"sync"
	"time"
)

const (
	// An item becomes active once at least this fraction of it is visible.
	activeVisibleFraction = 0.80

	// A monetized item is considered fully watched at this progress.
	rewardProgressPct = 98.0

	// How long a reward notification stays on screen.
	notificationTTL = 3 * time.Second
)

// Wallet is the boundary the tracker credits rewards through. The
// implementation must be idempotent per (user, post): repeated calls for
// the same pair report newly-credited only once.
type Wallet interface {
	CreditEarning(userID, postID string, amountCents int64) (bool, error)
}

// Notification is a transient on-screen reward notice.
type Notification struct {
	PostID      string    `json:"post_id"`
	Caption     string    `json:"caption"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// sessionState holds the per-session engagement window. Progress is
// keyed by instance id so it never leaks across duplicate instances of
// the same content; the earned set is keyed by base id and survives
// instance ids and tab switches.
type sessionState struct {
	items          map[string]ContentItem
	activeInstance string
	progress       map[string]float64
	earned         map[string]bool
	notifications  []Notification
}

func newSessionState() *sessionState {
	return &sessionState{
		items:    make(map[string]ContentItem),
		progress: make(map[string]float64),
		earned:   make(map[string]bool),
	}
}

// Tracker decides which content item is active for playback, tracks
// fractional watch progress per active item, and credits a reward at
// most once per base content id when a monetized item is watched to
// completion. It never returns errors: malformed input is a no-op.
type Tracker struct {
	wallet Wallet

	mu       sync.Mutex
	sessions map[string]*sessionState
	now      func() time.Time
}

func NewTracker(wallet Wallet) *Tracker {
	return &Tracker{
		wallet:   wallet,
		sessions: make(map[string]*sessionState),
		now:      time.Now,
	}
}

func (t *Tracker) session(userID string) *sessionState {
	s, ok := t.sessions[userID]
	if !ok {
		s = newSessionState()
		t.sessions[userID] = s
	}
	return s
}

// Observe registers a batch of rendered instances with the session so
// later visibility and progress events can resolve them.
func (t *Tracker) Observe(userID string, items []ContentItem) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session(userID)
	for _, item := range items {
		s.items[item.InstanceID] = item
	}
}

// SeedEarned loads the persisted earned set for a session, so rewards
// credited in earlier sessions are never re-credited.
func (t *Tracker) SeedEarned(userID string, baseIDs []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session(userID)
	for _, id := range baseIDs {
		s.earned[id] = true
	}
}

// Forget drops all session state for a user.
func (t *Tracker) Forget(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, userID)
}

// HandleVisibility consumes a viewport-intersection signal for a
// rendered instance. Crossing the threshold activates the item and
// restarts playback from zero; dropping below it deactivates the item
// and abandons its progress.
func (t *Tracker) HandleVisibility(userID, instanceID string, visibleFraction float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session(userID)
	if _, ok := s.items[instanceID]; !ok {
		return
	}

	if visibleFraction >= activeVisibleFraction {
		if s.activeInstance == instanceID {
			return
		}
		if s.activeInstance != "" {
			delete(s.progress, s.activeInstance)
		}
		s.activeInstance = instanceID
		s.progress[instanceID] = 0
		return
	}

	if s.activeInstance == instanceID {
		s.activeInstance = ""
		delete(s.progress, instanceID)
	}
}

// HandleProgress consumes a media time-update event for an instance.
// Updates for unknown or inactive instances, or with an unknown
// duration, are skipped.
func (t *Tracker) HandleProgress(userID, instanceID string, currentTime, duration float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session(userID)
	item, ok := s.items[instanceID]
	if !ok || s.activeInstance != instanceID {
		return
	}
	if duration == 0 {
		return
	}

	progress := currentTime / duration * 100
	s.progress[instanceID] = progress

	if progress < rewardProgressPct {
		return
	}
	if !item.Monetized || s.earned[item.BaseID] {
		return
	}

	credited, err := t.wallet.CreditEarning(userID, item.BaseID, item.RewardCents)
	if err != nil {
		// Best effort: leave the earned set untouched so a later
		// update can retry.
		slog.Warn("Failed to credit earning", "user", userID, "post", item.BaseID, "error", err)
		return
	}

	s.earned[item.BaseID] = true

	if credited {
		now := t.now()
		s.notifications = append(s.notifications, Notification{
			PostID:      item.BaseID,
			Caption:     item.Caption,
			AmountCents: item.RewardCents,
			CreatedAt:   now,
			ExpiresAt:   now.Add(notificationTTL),
		})
	}
}

// ActiveInstance returns the instance id currently active for the
// session, or empty when nothing is playing.
func (t *Tracker) ActiveInstance(userID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session(userID).activeInstance
}

// Progress returns the last-known progress percentage for an instance.
func (t *Tracker) Progress(userID, instanceID string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session(userID).progress[instanceID]
}

// Notifications returns the unexpired reward notices for a session and
// drops the expired ones.
func (t *Tracker) Notifications(userID string) []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session(userID)
	now := t.now()

	live := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ExpiresAt.After(now) {
			live = append(live, n)
		}
	}
	s.notifications = live

	result := make([]Notification, len(live))
	copy(result, live)
	return result
}

package feed

import (
	"errors"
	"testing"
	"time"

	"github.com/dreamlabs/dreams-server/app/database"
)

// fakeWallet mimics the repository's idempotent credit behavior.
type fakeWallet struct {
	available    int64
	pending      int64
	totalEarned  int64
	historyCount int
	earned       map[string]bool
	failing      bool
}

func newFakeWallet() *fakeWallet {
	return &fakeWallet{earned: make(map[string]bool)}
}

func (w *fakeWallet) CreditEarning(userID, postID string, amountCents int64) (bool, error) {
	if w.failing {
		return false, errors.New("wallet unavailable")
	}
	key := userID + ":" + postID
	if w.earned[key] {
		return false, nil
	}
	w.earned[key] = true
	w.available += amountCents
	w.pending += amountCents
	w.totalEarned += amountCents
	w.historyCount++
	return true, nil
}

func videoItem(baseID, instanceID string, monetized bool, rewardCents int64) ContentItem {
	return ContentItem{
		BaseID:      baseID,
		InstanceID:  instanceID,
		Caption:     "Test clip",
		MediaKind:   database.MediaKindVideo,
		VideoURL:    "https://cdn.example.com/videos/clip.mp4",
		Monetized:   monetized,
		RewardCents: rewardCents,
	}
}

func activate(t *testing.T, tracker *Tracker, user, instance string) {
	t.Helper()
	tracker.HandleVisibility(user, instance, 0.9)
	if tracker.ActiveInstance(user) != instance {
		t.Fatalf("Expected %s to be active", instance)
	}
}

func TestNonMonetizedNeverCredits(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	tracker.Observe("user-1", []ContentItem{videoItem("post-1", "post-1-i1", false, 0)})
	activate(t, tracker, "user-1", "post-1-i1")

	for _, progress := range []float64{10, 50, 97.9, 98, 99, 100} {
		tracker.HandleProgress("user-1", "post-1-i1", progress, 100)
	}

	if wallet.available != 0 || wallet.totalEarned != 0 {
		t.Errorf("Non-monetized item changed balances: available=%d earned=%d",
			wallet.available, wallet.totalEarned)
	}
}

func TestCreditThresholdBoundary(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	tracker.Observe("user-1", []ContentItem{videoItem("post-1", "post-1-i1", true, 2000)})
	activate(t, tracker, "user-1", "post-1-i1")

	tracker.HandleProgress("user-1", "post-1-i1", 97.9, 100)
	if wallet.available != 0 {
		t.Errorf("Progress 97.9 should not credit, available=%d", wallet.available)
	}

	tracker.HandleProgress("user-1", "post-1-i1", 98.0, 100)
	if wallet.available != 2000 || wallet.pending != 2000 || wallet.totalEarned != 2000 {
		t.Errorf("Progress 98.0 should credit exactly 2000 to all balances, got available=%d pending=%d earned=%d",
			wallet.available, wallet.pending, wallet.totalEarned)
	}
	if wallet.historyCount != 1 {
		t.Errorf("Expected exactly one history entry, got %d", wallet.historyCount)
	}
}

func TestReplayDoesNotDoubleCredit(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	item := videoItem("post-1", "post-1-i1", true, 2000)
	tracker.Observe("user-1", []ContentItem{item})
	activate(t, tracker, "user-1", "post-1-i1")

	tracker.HandleProgress("user-1", "post-1-i1", 99, 100)
	if wallet.available != 2000 {
		t.Fatalf("Expected first credit of 2000, got %d", wallet.available)
	}

	// Leave the viewport, re-enter the same content as a fresh
	// instance and watch to completion again.
	tracker.HandleVisibility("user-1", "post-1-i1", 0.1)
	reentry := videoItem("post-1", "post-1-i2", true, 2000)
	tracker.Observe("user-1", []ContentItem{reentry})
	activate(t, tracker, "user-1", "post-1-i2")
	tracker.HandleProgress("user-1", "post-1-i2", 100, 100)

	if wallet.available != 2000 {
		t.Errorf("Replay re-credited: available=%d", wallet.available)
	}
	if wallet.historyCount != 1 {
		t.Errorf("Replay appended a second history entry: %d", wallet.historyCount)
	}
}

func TestSeededEarnedSetBlocksCredit(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	tracker.SeedEarned("user-1", []string{"post-1"})
	tracker.Observe("user-1", []ContentItem{videoItem("post-1", "post-1-i1", true, 2000)})
	activate(t, tracker, "user-1", "post-1-i1")
	tracker.HandleProgress("user-1", "post-1-i1", 100, 100)

	if wallet.available != 0 {
		t.Errorf("Seeded earned set should block crediting, available=%d", wallet.available)
	}
}

func TestZeroDurationSkipped(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	tracker.Observe("user-1", []ContentItem{videoItem("post-1", "post-1-i1", true, 2000)})
	activate(t, tracker, "user-1", "post-1-i1")

	tracker.HandleProgress("user-1", "post-1-i1", 50, 0)

	if got := tracker.Progress("user-1", "post-1-i1"); got != 0 {
		t.Errorf("Zero duration update should be skipped, progress=%f", got)
	}
	if wallet.available != 0 {
		t.Errorf("Zero duration update credited: available=%d", wallet.available)
	}
}

func TestUnknownInstanceIsNoOp(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	tracker.HandleVisibility("user-1", "ghost", 0.9)
	tracker.HandleProgress("user-1", "ghost", 100, 100)

	if tracker.ActiveInstance("user-1") != "" {
		t.Error("Unknown instance should never activate")
	}
	if wallet.available != 0 {
		t.Errorf("Unknown instance credited: available=%d", wallet.available)
	}
}

func TestProgressRequiresActiveInstance(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	tracker.Observe("user-1", []ContentItem{videoItem("post-1", "post-1-i1", true, 2000)})

	// No visibility signal yet: progress updates are ignored.
	tracker.HandleProgress("user-1", "post-1-i1", 100, 100)
	if wallet.available != 0 {
		t.Errorf("Inactive instance credited: available=%d", wallet.available)
	}
}

func TestVisibilityActivationResetsProgress(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	tracker.Observe("user-1", []ContentItem{
		videoItem("post-1", "post-1-i1", false, 0),
		videoItem("post-2", "post-2-i1", false, 0),
	})

	activate(t, tracker, "user-1", "post-1-i1")
	tracker.HandleProgress("user-1", "post-1-i1", 40, 100)
	if got := tracker.Progress("user-1", "post-1-i1"); got != 40 {
		t.Fatalf("Expected progress 40, got %f", got)
	}

	// A second item crossing the threshold displaces the first; the
	// first item's progress is abandoned, not persisted.
	activate(t, tracker, "user-1", "post-2-i1")
	if got := tracker.Progress("user-1", "post-1-i1"); got != 0 {
		t.Errorf("Deactivated item should have no progress, got %f", got)
	}

	// Re-entering the first item starts from zero.
	activate(t, tracker, "user-1", "post-1-i1")
	if got := tracker.Progress("user-1", "post-1-i1"); got != 0 {
		t.Errorf("Re-activated item should restart from zero, got %f", got)
	}
}

func TestBelowThresholdVisibilityDoesNotActivate(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	tracker.Observe("user-1", []ContentItem{videoItem("post-1", "post-1-i1", false, 0)})
	tracker.HandleVisibility("user-1", "post-1-i1", 0.79)

	if tracker.ActiveInstance("user-1") != "" {
		t.Error("Visibility below 0.80 should not activate")
	}
}

func TestProgressKeyedByInstanceID(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	tracker.Observe("user-1", []ContentItem{
		videoItem("post-1", "post-1-i1", false, 0),
		videoItem("post-1", "post-1-i2", false, 0),
	})

	activate(t, tracker, "user-1", "post-1-i1")
	tracker.HandleProgress("user-1", "post-1-i1", 60, 100)

	if got := tracker.Progress("user-1", "post-1-i2"); got != 0 {
		t.Errorf("Progress leaked across duplicate instances: %f", got)
	}
}

func TestWalletFailureLeavesEarnedSetUntouched(t *testing.T) {
	wallet := newFakeWallet()
	wallet.failing = true
	tracker := NewTracker(wallet)

	tracker.Observe("user-1", []ContentItem{videoItem("post-1", "post-1-i1", true, 2000)})
	activate(t, tracker, "user-1", "post-1-i1")
	tracker.HandleProgress("user-1", "post-1-i1", 99, 100)

	if wallet.available != 0 {
		t.Fatalf("Failing wallet should not credit, available=%d", wallet.available)
	}

	// Wallet recovers; the next progress update retries the credit.
	wallet.failing = false
	tracker.HandleProgress("user-1", "post-1-i1", 100, 100)
	if wallet.available != 2000 {
		t.Errorf("Credit should retry after wallet recovery, available=%d", wallet.available)
	}
}

func TestNotificationLifecycle(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return current }

	tracker.Observe("user-1", []ContentItem{videoItem("post-1", "post-1-i1", true, 2000)})
	activate(t, tracker, "user-1", "post-1-i1")
	tracker.HandleProgress("user-1", "post-1-i1", 99, 100)

	notifications := tracker.Notifications("user-1")
	if len(notifications) != 1 {
		t.Fatalf("Expected one notification, got %d", len(notifications))
	}
	if notifications[0].AmountCents != 2000 {
		t.Errorf("Expected notification amount 2000, got %d", notifications[0].AmountCents)
	}
	if !notifications[0].ExpiresAt.Equal(current.Add(3 * time.Second)) {
		t.Errorf("Notification should expire after 3s, expires at %v", notifications[0].ExpiresAt)
	}

	// Two seconds later the notice is still visible.
	current = current.Add(2 * time.Second)
	if got := tracker.Notifications("user-1"); len(got) != 1 {
		t.Errorf("Notification should still be visible after 2s, got %d", len(got))
	}

	// After the display duration it auto-dismisses.
	current = current.Add(2 * time.Second)
	if got := tracker.Notifications("user-1"); len(got) != 0 {
		t.Errorf("Notification should auto-dismiss after 3s, got %d", len(got))
	}
}

func TestForgetDropsSessionState(t *testing.T) {
	wallet := newFakeWallet()
	tracker := NewTracker(wallet)

	tracker.Observe("user-1", []ContentItem{videoItem("post-1", "post-1-i1", false, 0)})
	activate(t, tracker, "user-1", "post-1-i1")

	tracker.Forget("user-1")
	if tracker.ActiveInstance("user-1") != "" {
		t.Error("Forget should drop the active instance")
	}
}

func TestShouldLoadMore(t *testing.T) {
	cases := []struct {
		name     string
		offset   float64
		viewport float64
		total    float64
		expected bool
	}{
		{"at threshold", 1400, 600, 2500, true},
		{"past threshold", 2000, 600, 2500, true},
		{"below threshold", 1000, 600, 2500, false},
		{"zero total", 0, 600, 0, false},
		{"short page", 0, 600, 500, true},
	}

	for _, c := range cases {
		if got := ShouldLoadMore(c.offset, c.viewport, c.total); got != c.expected {
			t.Errorf("%s: ShouldLoadMore(%f, %f, %f) = %v, expected %v",
				c.name, c.offset, c.viewport, c.total, got, c.expected)
		}
	}
}

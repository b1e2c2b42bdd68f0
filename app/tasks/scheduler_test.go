package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/dreamlabs/dreams-server/app/content"
	"github.com/dreamlabs/dreams-server/app/database"
)

// MockWalletRepository implements a simple mock for testing
type MockWalletRepository struct {
	statuses map[string]database.WithdrawalStatus
	settled  []string
	pruned   int64
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{statuses: make(map[string]database.WithdrawalStatus)}
}

func (m *MockWalletRepository) GetWallet(userID string) (*database.Wallet, error) {
	return &database.Wallet{}, nil
}

func (m *MockWalletRepository) CreditEarning(userID, postID string, amountCents int64) (bool, error) {
	return true, nil
}

func (m *MockWalletRepository) ProcessWithdrawal(userID string, amountCents int64, bankName, accountNumber string) (string, error) {
	return "test-id", nil
}

func (m *MockWalletRepository) GetEarnings(userID string, limit int) ([]database.Earning, error) {
	return nil, nil
}

func (m *MockWalletRepository) GetWithdrawals(userID string, limit int) ([]database.Withdrawal, error) {
	return nil, nil
}

func (m *MockWalletRepository) GetEarnedPostIDs(userID string) ([]string, error) {
	return nil, nil
}

func (m *MockWalletRepository) GetWithdrawalsByStatus(status database.WithdrawalStatus, limit int) ([]database.Withdrawal, error) {
	var result []database.Withdrawal
	for id, s := range m.statuses {
		if s == status {
			result = append(result, database.Withdrawal{ID: id, Status: s})
		}
	}
	return result, nil
}

func (m *MockWalletRepository) AdvanceWithdrawal(id string, from, to database.WithdrawalStatus) (bool, error) {
	if m.statuses[id] != from {
		return false, nil
	}
	m.statuses[id] = to
	return true, nil
}

func (m *MockWalletRepository) SettleWithdrawal(id string) error {
	m.statuses[id] = database.WithdrawalStatusCompleted
	m.settled = append(m.settled, id)
	return nil
}

func (m *MockWalletRepository) PruneHistory(keepPerUser int) (int64, error) {
	return m.pruned, nil
}

// MockUserRepository implements a simple mock for testing
type MockUserRepository struct {
	users   map[string]*database.User
	created []string
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*database.User)}
}

func (m *MockUserRepository) CreateUser(username, passwordHash string) (*database.User, error) {
	u := &database.User{ID: "user-" + username, Username: username, PasswordHash: passwordHash}
	m.users[username] = u
	m.created = append(m.created, username)
	return u, nil
}

func (m *MockUserRepository) GetUserByID(id string) (*database.User, error) {
	return nil, nil
}

func (m *MockUserRepository) GetUserByUsername(username string) (*database.User, error) {
	return m.users[username], nil
}

func (m *MockUserRepository) UpdateProfile(id, displayName, bio, avatarURL string) error {
	return nil
}

func (m *MockUserRepository) UpdateSettings(id string, autoplayEnabled, notificationsEnabled bool) error {
	return nil
}

func (m *MockUserRepository) GetUserCount() (int, error) {
	return len(m.users), nil
}

// MockPostRepository implements a simple mock for testing
type MockPostRepository struct {
	upserted []database.NewPost
}

func (m *MockPostRepository) CreatePost(post database.NewPost) (*database.Post, error) {
	return &database.Post{ID: "test-id"}, nil
}

func (m *MockPostRepository) UpsertCatalogPost(post database.NewPost) (*database.Post, error) {
	m.upserted = append(m.upserted, post)
	return &database.Post{ID: "test-id"}, nil
}

func (m *MockPostRepository) GetPost(id string) (*database.Post, error) {
	return nil, nil
}

func (m *MockPostRepository) GetPostsByCreator(creatorID string) ([]database.Post, error) {
	return nil, nil
}

func (m *MockPostRepository) GetCatalogPosts(category string) ([]database.Post, error) {
	return nil, nil
}

func (m *MockPostRepository) GetFollowedPosts(followerID string) ([]database.Post, error) {
	return nil, nil
}

func (m *MockPostRepository) IncrementShareCount(postID string) error {
	return nil
}

func (m *MockPostRepository) GetPostCount() (int, error) {
	return 0, nil
}

func TestProcessWithdrawalTask(t *testing.T) {
	walletRepo := NewMockWalletRepository()
	walletRepo.statuses["w1"] = database.WithdrawalStatusPending

	task := NewProcessWithdrawalTask("w1", walletRepo)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if walletRepo.statuses["w1"] != database.WithdrawalStatusCompleted {
		t.Errorf("Expected status completed, got %s", walletRepo.statuses["w1"])
	}

	if len(walletRepo.settled) != 1 {
		t.Errorf("Expected 1 settled withdrawal, got %d", len(walletRepo.settled))
	}
}

func TestProcessWithdrawalTaskAlreadyClaimed(t *testing.T) {
	walletRepo := NewMockWalletRepository()
	walletRepo.statuses["w1"] = database.WithdrawalStatusProcessing

	task := NewProcessWithdrawalTask("w1", walletRepo)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(walletRepo.settled) != 0 {
		t.Errorf("Claimed withdrawal should be skipped, got %d settlements", len(walletRepo.settled))
	}
}

func TestSyncCatalogTask(t *testing.T) {
	userRepo := NewMockUserRepository()
	postRepo := &MockPostRepository{}

	entry := &content.Entry{
		Name:        "neon-city-drive",
		Creator:     "Luna_Visuals",
		Caption:     "Night drive through the neon city",
		Category:    "travel",
		Monetized:   true,
		RewardCents: 50,
	}
	entry.Media.Kind = "video"
	entry.Media.VideoURL = "https://cdn.example.com/neon.mp4"
	entry.Counters.Likes = 1200

	task := NewSyncCatalogTask(entry, userRepo, postRepo)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(userRepo.created) != 1 || userRepo.created[0] != "luna_visuals" {
		t.Errorf("Expected creator 'luna_visuals' to be created, got %v", userRepo.created)
	}

	if len(postRepo.upserted) != 1 {
		t.Fatalf("Expected 1 upserted post, got %d", len(postRepo.upserted))
	}

	post := postRepo.upserted[0]
	if post.Source != database.PostSourceCatalog {
		t.Errorf("Expected catalog source, got %s", post.Source)
	}
	if post.CatalogName == nil || *post.CatalogName != "neon-city-drive" {
		t.Error("Expected catalog name to be set")
	}
	if post.RewardCents != 50 {
		t.Errorf("Expected reward 50, got %d", post.RewardCents)
	}
	if post.LikesCount != 1200 {
		t.Errorf("Expected seeded likes 1200, got %d", post.LikesCount)
	}

	// Re-sync must reuse the existing creator account
	task2 := NewSyncCatalogTask(entry, userRepo, postRepo)
	task2.Start()
	if err := task2.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(userRepo.created) != 1 {
		t.Errorf("Expected creator to be created once, got %d", len(userRepo.created))
	}
}

func TestPruneHistoryTask(t *testing.T) {
	walletRepo := NewMockWalletRepository()
	walletRepo.pruned = 7

	task := NewPruneHistoryTask(50, walletRepo)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypePruneHistory, "earnings")

	if !task.CanRetry() {
		t.Error("Fresh task should be retryable")
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("Task at max retries should not be retryable")
	}

	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeSyncCatalog, "test")

	if task.GetDuration() != 0 {
		t.Error("Unstarted task should report zero duration")
	}

	task.Start()
	time.Sleep(10 * time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Error("Started task should report positive duration")
	}
}

func TestCancelledContext(t *testing.T) {
	walletRepo := NewMockWalletRepository()
	walletRepo.statuses["w1"] = database.WithdrawalStatusPending

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := NewProcessWithdrawalTask("w1", walletRepo)
	if err := task.Execute(ctx); err == nil {
		t.Error("Expected error from cancelled context")
	}

	if walletRepo.statuses["w1"] != database.WithdrawalStatusPending {
		t.Error("Cancelled task must not touch the withdrawal")
	}
}

package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dreamlabs/dreams-server/app/account"
	"github.com/dreamlabs/dreams-server/app/content"
	"github.com/dreamlabs/dreams-server/app/database"
)

// SyncCatalogTask registers one curated catalog entry in the database,
// creating its creator account on first sight. Re-syncing an already
// registered entry updates the content fields but never resets live
// engagement counters.
type SyncCatalogTask struct {
	Task
	Entry    *content.Entry
	userRepo database.UserRepository
	postRepo database.PostRepository
}

func NewSyncCatalogTask(entry *content.Entry, userRepo database.UserRepository,
	postRepo database.PostRepository) *SyncCatalogTask {
	return &SyncCatalogTask{
		Task:     NewTask(TaskTypeSyncCatalog, entry.Name),
		Entry:    entry,
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

func (t *SyncCatalogTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	creatorID, err := t.resolveCreator(t.Entry.Creator)
	if err != nil {
		return fmt.Errorf("failed to resolve catalog creator: %w", err)
	}

	catalogName := t.Entry.Name
	_, err = t.postRepo.UpsertCatalogPost(database.NewPost{
		CreatorID:     creatorID,
		Caption:       t.Entry.Caption,
		MediaKind:     database.MediaKind(t.Entry.Media.Kind),
		VideoURL:      t.Entry.Media.VideoURL,
		ImageURLs:     t.Entry.Media.ImageURLs,
		Category:      t.Entry.Category,
		Monetized:     t.Entry.Monetized,
		RewardCents:   t.Entry.RewardCents,
		Source:        database.PostSourceCatalog,
		CatalogName:   &catalogName,
		LikesCount:    t.Entry.Counters.Likes,
		CommentsCount: t.Entry.Counters.Comments,
		SharesCount:   t.Entry.Counters.Shares,
	})
	if err != nil {
		slog.Error("Task failed", "type", "SyncCatalog", "entry", t.Entry.Name, "error", err)
		return fmt.Errorf("failed to sync catalog entry to database: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncCatalog",
		"entry", t.Entry.Name,
		"duration", t.GetDuration())

	return nil
}

// resolveCreator looks up the catalog creator account by handle,
// creating it with an unusable password when absent. Catalog accounts
// can never be logged into.
func (t *SyncCatalogTask) resolveCreator(handle string) (string, error) {
	handle = account.NormalizeUsername(handle)

	user, err := t.userRepo.GetUserByUsername(handle)
	if err != nil {
		return "", fmt.Errorf("failed to look up creator %s: %w", handle, err)
	}
	if user != nil {
		return user.ID, nil
	}

	user, err = t.userRepo.CreateUser(handle, "!")
	if err != nil {
		return "", fmt.Errorf("failed to create creator %s: %w", handle, err)
	}
	return user.ID, nil
}

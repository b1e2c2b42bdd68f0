package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dreamlabs/dreams-server/app/database"
)

// PruneHistoryTask trims each user's earnings history to the configured
// retention window. The earned-post ledger that guards against repeat
// crediting is a separate table and is never pruned.
type PruneHistoryTask struct {
	Task
	keepPerUser int
	walletRepo  database.WalletRepository
}

func NewPruneHistoryTask(keepPerUser int, walletRepo database.WalletRepository) *PruneHistoryTask {
	return &PruneHistoryTask{
		Task:        NewTask(TaskTypePruneHistory, "earnings"),
		keepPerUser: keepPerUser,
		walletRepo:  walletRepo,
	}
}

func (t *PruneHistoryTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	pruned, err := t.walletRepo.PruneHistory(t.keepPerUser)
	if err != nil {
		return fmt.Errorf("failed to prune earnings history: %w", err)
	}

	slog.Info("Task completed",
		"type", "PruneHistory",
		"duration", t.GetDuration(),
		"pruned", pruned)

	return nil
}

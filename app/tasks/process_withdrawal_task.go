package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dreamlabs/dreams-server/app/database"
)

// ProcessWithdrawalTask advances one pending withdrawal to completion.
// The status transitions use compare-and-swap semantics, so a withdrawal
// concurrently picked up by another worker is skipped rather than
// processed twice.
type ProcessWithdrawalTask struct {
	Task
	WithdrawalID string
	walletRepo   database.WalletRepository
}

func NewProcessWithdrawalTask(withdrawalID string, walletRepo database.WalletRepository) *ProcessWithdrawalTask {
	return &ProcessWithdrawalTask{
		Task:         NewTask(TaskTypeProcessWithdrawal, withdrawalID),
		WithdrawalID: withdrawalID,
		walletRepo:   walletRepo,
	}
}

func (t *ProcessWithdrawalTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	claimed, err := t.walletRepo.AdvanceWithdrawal(t.WithdrawalID,
		database.WithdrawalStatusPending, database.WithdrawalStatusProcessing)
	if err != nil {
		return fmt.Errorf("failed to claim withdrawal: %w", err)
	}
	if !claimed {
		slog.Debug("Withdrawal already claimed, skipping", "withdrawal_id", t.WithdrawalID)
		return nil
	}

	if err := t.walletRepo.SettleWithdrawal(t.WithdrawalID); err != nil {
		return fmt.Errorf("failed to settle withdrawal: %w", err)
	}

	slog.Info("Task completed",
		"type", "ProcessWithdrawal",
		"withdrawal_id", t.WithdrawalID,
		"duration", t.GetDuration())

	return nil
}

package database

import (
	"database/sql"
	"fmt"
)

// walletRepository handles balances, earnings and withdrawals
type walletRepository struct {
	db *DB
}

func NewWalletRepository(db *DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetWallet(userID string) (*Wallet, error) {
	var w Wallet
	err := r.db.QueryRow(`
		SELECT available_cents, pending_cents, total_earned_cents, total_withdrawn_cents
		FROM users WHERE id = $1
	`, userID).Scan(&w.AvailableCents, &w.PendingCents, &w.TotalEarnedCents, &w.TotalWithdrawnCents)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &w, nil
}

// CreditEarning records an earning for (user, post) at most once. The
// earned_posts primary key makes replays a no-op; the history entry and
// balance movement happen only when the set gains a new member.
func (r *walletRepository) CreditEarning(userID, postID string, amountCents int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin earning transaction: %w", err)
	}
	defer tx.Rollback()

	var earnedUserID sql.NullString
	err = tx.QueryRow(`
		INSERT INTO earned_posts (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
		RETURNING user_id
	`, userID, postID).Scan(&earnedUserID)

	if err == sql.ErrNoRows {
		// Already credited for this post, nothing to do.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to record earned post: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO earnings (user_id, post_id, amount_cents)
		VALUES ($1, $2, $3)
	`, userID, postID, amountCents)
	if err != nil {
		return false, fmt.Errorf("failed to record earning: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE users
		SET available_cents = available_cents + $2,
		    pending_cents = pending_cents + $2,
		    total_earned_cents = total_earned_cents + $2,
		    updated_at = NOW()
		WHERE id = $1
	`, userID, amountCents)
	if err != nil {
		return false, fmt.Errorf("failed to update balances: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit earning: %w", err)
	}
	return true, nil
}

// ProcessWithdrawal checks the balance and decrements it atomically with
// the creation of the pending withdrawal row.
func (r *walletRepository) ProcessWithdrawal(userID string, amountCents int64, bankName, accountNumber string) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin withdrawal transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE users
		SET available_cents = available_cents - $2, updated_at = NOW()
		WHERE id = $1 AND available_cents >= $2
	`, userID, amountCents)
	if err != nil {
		return "", fmt.Errorf("failed to decrement balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to read withdrawal result: %w", err)
	}
	if affected == 0 {
		return "", ErrInsufficientFunds
	}

	var id string
	err = tx.QueryRow(`
		INSERT INTO withdrawals (user_id, amount_cents, bank_name, account_number, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id
	`, userID, amountCents, bankName, accountNumber).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create withdrawal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit withdrawal: %w", err)
	}
	return id, nil
}

func (r *walletRepository) GetEarnings(userID string, limit int) ([]Earning, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, post_id, amount_cents, created_at
		FROM earnings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get earnings: %w", err)
	}
	defer rows.Close()

	var earnings []Earning
	for rows.Next() {
		var e Earning
		if err := rows.Scan(&e.ID, &e.UserID, &e.PostID, &e.AmountCents, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan earning row: %w", err)
		}
		earnings = append(earnings, e)
	}
	return earnings, rows.Err()
}

const withdrawalColumns = `id, user_id, amount_cents, bank_name, account_number, status, created_at, updated_at`

func (r *walletRepository) GetWithdrawals(userID string, limit int) ([]Withdrawal, error) {
	return r.queryWithdrawals(`
		SELECT `+withdrawalColumns+` FROM withdrawals
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
}

func (r *walletRepository) GetWithdrawalsByStatus(status WithdrawalStatus, limit int) ([]Withdrawal, error) {
	return r.queryWithdrawals(`
		SELECT `+withdrawalColumns+` FROM withdrawals
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2
	`, status, limit)
}

func (r *walletRepository) queryWithdrawals(query string, args ...interface{}) ([]Withdrawal, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawals: %w", err)
	}
	defer rows.Close()

	var withdrawals []Withdrawal
	for rows.Next() {
		var w Withdrawal
		err := rows.Scan(&w.ID, &w.UserID, &w.AmountCents, &w.BankName,
			&w.AccountNumber, &w.Status, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal row: %w", err)
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}

func (r *walletRepository) GetEarnedPostIDs(userID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT post_id FROM earned_posts WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get earned post ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan earned post id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AdvanceWithdrawal moves a withdrawal from one status to another and
// reports whether the transition happened. Concurrent workers racing on
// the same row see affected == 0 and back off.
func (r *walletRepository) AdvanceWithdrawal(id string, from, to WithdrawalStatus) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE withdrawals
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to advance withdrawal: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read advance result: %w", err)
	}
	return affected > 0, nil
}

// SettleWithdrawal completes a processing withdrawal: the amount leaves
// the pending balance and lands in total withdrawn.
func (r *walletRepository) SettleWithdrawal(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin settle transaction: %w", err)
	}
	defer tx.Rollback()

	var userID string
	var amountCents int64
	err = tx.QueryRow(`
		UPDATE withdrawals
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'processing'
		RETURNING user_id, amount_cents
	`, id).Scan(&userID, &amountCents)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to complete withdrawal: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE users
		SET pending_cents = GREATEST(pending_cents - $2, 0),
		    total_withdrawn_cents = total_withdrawn_cents + $2,
		    updated_at = NOW()
		WHERE id = $1
	`, userID, amountCents)
	if err != nil {
		return fmt.Errorf("failed to settle balances: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}
	return nil
}

// PruneHistory drops earning and withdrawal history rows beyond the most
// recent keepPerUser entries per user and returns how many rows were
// removed. The earned_posts set is untouched.
func (r *walletRepository) PruneHistory(keepPerUser int) (int64, error) {
	var total int64

	for _, table := range []string{"earnings", "withdrawals"} {
		res, err := r.db.Exec(fmt.Sprintf(`
			DELETE FROM %s WHERE id IN (
				SELECT id FROM (
					SELECT id, ROW_NUMBER() OVER (PARTITION BY user_id ORDER BY created_at DESC) AS rn
					FROM %s
				) ranked
				WHERE ranked.rn > $1
			)
		`, table, table), keepPerUser)
		if err != nil {
			return total, fmt.Errorf("failed to prune %s: %w", table, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("failed to read prune result: %w", err)
		}
		total += affected
	}

	return total, nil
}

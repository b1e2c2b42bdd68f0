package wallet

import (
	"errors"
	"fmt"

	"github.com/dreamlabs/dreams-server/app/database"
)

var (
	// ErrBelowMinimum is returned when a withdrawal request falls below
	// the configured minimum amount.
	ErrBelowMinimum = errors.New("withdrawal amount below minimum")
	// ErrInsufficientFunds is returned when a withdrawal request exceeds
	// the available balance.
	ErrInsufficientFunds = errors.New("withdrawal amount exceeds available balance")
	// ErrMissingBankDetails is returned when bank name or account number
	// is empty.
	ErrMissingBankDetails = errors.New("bank name and account number are required")
)

// Service applies the economy rules on top of the wallet repository.
type Service struct {
	repo          database.WalletRepository
	minWithdrawal int64
	historyLimit  int
}

func NewService(repo database.WalletRepository, minWithdrawal int64, historyLimit int) *Service {
	return &Service{
		repo:          repo,
		minWithdrawal: minWithdrawal,
		historyLimit:  historyLimit,
	}
}

func (s *Service) MinWithdrawal() int64 {
	return s.minWithdrawal
}

func (s *Service) Balance(userID string) (*database.Wallet, error) {
	w, err := s.repo.GetWallet(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if w == nil {
		return nil, fmt.Errorf("wallet not found for user %s", userID)
	}
	return w, nil
}

// CreditEarning records a view reward at most once per (user, post) and
// reports whether it was newly credited.
func (s *Service) CreditEarning(userID, postID string, amountCents int64) (bool, error) {
	if amountCents <= 0 {
		return false, nil
	}
	return s.repo.CreditEarning(userID, postID, amountCents)
}

// RequestWithdrawal validates the request and, if it passes, decrements
// the available balance atomically with the creation of the pending
// withdrawal. Rejections leave balance and history unchanged.
func (s *Service) RequestWithdrawal(userID string, amountCents int64, bankName, accountNumber string) (string, error) {
	if bankName == "" || accountNumber == "" {
		return "", ErrMissingBankDetails
	}
	if amountCents < s.minWithdrawal {
		return "", ErrBelowMinimum
	}

	w, err := s.Balance(userID)
	if err != nil {
		return "", err
	}
	if amountCents > w.AvailableCents {
		return "", ErrInsufficientFunds
	}

	id, err := s.repo.ProcessWithdrawal(userID, amountCents, bankName, accountNumber)
	if errors.Is(err, database.ErrInsufficientFunds) {
		// The balance moved between the read and the write; same
		// rejection as the pre-check.
		return "", ErrInsufficientFunds
	}
	if err != nil {
		return "", fmt.Errorf("failed to process withdrawal: %w", err)
	}
	return id, nil
}

func (s *Service) Earnings(userID string) ([]database.Earning, error) {
	earnings, err := s.repo.GetEarnings(userID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load earnings: %w", err)
	}
	return earnings, nil
}

func (s *Service) Withdrawals(userID string) ([]database.Withdrawal, error) {
	withdrawals, err := s.repo.GetWithdrawals(userID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load withdrawals: %w", err)
	}
	return withdrawals, nil
}

// EarnedPostIDs returns the persisted earned set for seeding a feed
// session.
func (s *Service) EarnedPostIDs(userID string) ([]string, error) {
	ids, err := s.repo.GetEarnedPostIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load earned post ids: %w", err)
	}
	return ids, nil
}

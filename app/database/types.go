package database

import (
	"time"
)

// MediaKind distinguishes image posts from video posts. Consumers must
// handle both cases explicitly.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// PostSource records where a post originated.
type PostSource string

const (
	PostSourceCatalog PostSource = "catalog"
	PostSourceUser    PostSource = "user"
)

// WithdrawalStatus tracks a withdrawal request through settlement.
type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "pending"
	WithdrawalStatusProcessing WithdrawalStatus = "processing"
	WithdrawalStatusApproved   WithdrawalStatus = "approved"
	WithdrawalStatusRejected   WithdrawalStatus = "rejected"
	WithdrawalStatusCompleted  WithdrawalStatus = "completed"
)

func (s WithdrawalStatus) String() string {
	return string(s)
}

// IsTerminal returns true once a withdrawal can no longer change state.
func (s WithdrawalStatus) IsTerminal() bool {
	return s == WithdrawalStatusCompleted || s == WithdrawalStatusRejected
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	DisplayName  string
	Bio          string
	AvatarURL    string

	AvailableCents      int64
	PendingCents        int64
	TotalEarnedCents    int64
	TotalWithdrawnCents int64

	AutoplayEnabled      bool
	NotificationsEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicProfile is the projection of a user safe to expose to other
// users. Financial fields are deliberately absent.
type PublicProfile struct {
	ID          string
	Username    string
	DisplayName string
	Bio         string
	AvatarURL   string
	CreatedAt   time.Time
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
	}
}

type Post struct {
	ID            string
	CreatorID     string
	CreatorHandle string
	Caption       string
	MediaKind     MediaKind
	VideoURL      string
	ImageURLs     []string
	Category      string
	Monetized     bool
	RewardCents   int64
	LikesCount    int
	CommentsCount int
	SharesCount   int
	Source        PostSource
	CatalogName   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Username  string
	Body      string
	CreatedAt time.Time
}

type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Body        string
	CreatedAt   time.Time
}

type Earning struct {
	ID          string
	UserID      string
	PostID      string
	AmountCents int64
	CreatedAt   time.Time
}

type Withdrawal struct {
	ID            string
	UserID        string
	AmountCents   int64
	BankName      string
	AccountNumber string
	Status        WithdrawalStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Wallet is the balance snapshot for a user, amounts in cents.
type Wallet struct {
	AvailableCents      int64
	PendingCents        int64
	TotalEarnedCents    int64
	TotalWithdrawnCents int64
}

package database

import "errors"

// ErrInsufficientFunds is returned when a withdrawal exceeds the
// available balance at processing time.
var ErrInsufficientFunds = errors.New("insufficient available balance")

// NewPost carries the fields needed to create a post row.
type NewPost struct {
	CreatorID   string
	Caption     string
	MediaKind   MediaKind
	VideoURL    string
	ImageURLs   []string
	Category    string
	Monetized   bool
	RewardCents int64
	Source      PostSource
	CatalogName *string

	// Seed counters for curated catalog entries. Ignored for user posts.
	LikesCount    int
	CommentsCount int
	SharesCount   int
}

type UserRepository interface {
	CreateUser(username, passwordHash string) (*User, error)
	GetUserByID(id string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	UpdateProfile(id, displayName, bio, avatarURL string) error
	UpdateSettings(id string, autoplayEnabled, notificationsEnabled bool) error
	GetUserCount() (int, error)
}

type PostRepository interface {
	CreatePost(post NewPost) (*Post, error)
	UpsertCatalogPost(post NewPost) (*Post, error)
	GetPost(id string) (*Post, error)
	GetPostsByCreator(creatorID string) ([]Post, error)
	GetCatalogPosts(category string) ([]Post, error)
	GetFollowedPosts(followerID string) ([]Post, error)
	IncrementShareCount(postID string) error
	GetPostCount() (int, error)
}

type EngagementRepository interface {
	ToggleLike(userID, postID string) (bool, error)
	ToggleSave(userID, postID string) (bool, error)
	AddComment(userID, postID, body string) (*Comment, error)
	GetComments(postID string, limit int) ([]Comment, error)
	GetLikedPostIDs(userID string) ([]string, error)
	GetSavedPostIDs(userID string) ([]string, error)
	Follow(followerID, creatorID string) error
	Unfollow(followerID, creatorID string) error
	GetFollowedCreatorIDs(followerID string) ([]string, error)
}

type WalletRepository interface {
	GetWallet(userID string) (*Wallet, error)

	// CreditEarning atomically records an earning for a (user, post,
	// amount) tuple and returns whether it was newly credited.
	CreditEarning(userID, postID string, amountCents int64) (bool, error)

	// ProcessWithdrawal atomically validates the balance, decrements it
	// and creates a pending withdrawal, returning the withdrawal ID.
	ProcessWithdrawal(userID string, amountCents int64, bankName, accountNumber string) (string, error)

	GetEarnings(userID string, limit int) ([]Earning, error)
	GetWithdrawals(userID string, limit int) ([]Withdrawal, error)
	GetEarnedPostIDs(userID string) ([]string, error)

	GetWithdrawalsByStatus(status WithdrawalStatus, limit int) ([]Withdrawal, error)
	AdvanceWithdrawal(id string, from, to WithdrawalStatus) (bool, error)
	SettleWithdrawal(id string) error

	PruneHistory(keepPerUser int) (int64, error)
}

type MessageRepository interface {
	Send(senderID, recipientID, body string) (*Message, error)
	GetConversation(userID, otherID string, limit int) ([]Message, error)
	GetRecentConversations(userID string, limit int) ([]Message, error)
}

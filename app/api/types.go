package api

import (
	"github.com/dreamlabs/dreams-server/app/account"
	"github.com/dreamlabs/dreams-server/app/cache"
	"github.com/dreamlabs/dreams-server/app/content"
	"github.com/dreamlabs/dreams-server/app/database"
	"github.com/dreamlabs/dreams-server/app/feed"
	"github.com/dreamlabs/dreams-server/app/media"
	"github.com/dreamlabs/dreams-server/app/wallet"
)

type Handler struct {
	accounts     *account.Service
	feeds        *feed.Service
	tracker      *feed.Tracker
	wallets      *wallet.Service
	mediaStore   media.Store
	cache        *cache.Cache
	catalogCache *content.CatalogCache
	userRepo     database.UserRepository
	postRepo     database.PostRepository
}

// Request payloads

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type visibilityEvent struct {
	InstanceID      string  `json:"instance_id" binding:"required"`
	VisibleFraction float64 `json:"visible_fraction"`
}

type progressEvent struct {
	InstanceID  string  `json:"instance_id" binding:"required"`
	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration"`
}

type scrollEvent struct {
	ScrollOffset   float64 `json:"scroll_offset"`
	ViewportHeight float64 `json:"viewport_height"`
	TotalHeight    float64 `json:"total_height"`
}

type withdrawRequest struct {
	AmountCents   int64  `json:"amount_cents" binding:"required"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
}

type commentRequest struct {
	Body string `json:"body" binding:"required"`
}

type messageRequest struct {
	Body string `json:"body" binding:"required"`
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}

type settingsRequest struct {
	AutoplayEnabled      *bool `json:"autoplay_enabled"`
	NotificationsEnabled *bool `json:"notifications_enabled"`
}

package feed

import (
	"time"

	"github.com/dreamlabs/dreams-server/app/database"
)

// Tab identifies which feed variant the client is viewing.
type Tab string

const (
	TabForYou    Tab = "for-you"
	TabFollowing Tab = "following"
	TabExplore   Tab = "explore"
)

// ParseTab maps a request parameter to a Tab, defaulting to for-you.
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabFollowing:
		return TabFollowing
	case TabExplore:
		return TabExplore
	default:
		return TabForYou
	}
}

// ContentItem is one renderable feed entry. BaseID is the stable post
// identifier shared across every duplicated occurrence of the content in
// an infinite feed; InstanceID is unique per render occurrence and is
// what progress tracking keys on.
type ContentItem struct {
	BaseID        string             `json:"base_id"`
	InstanceID    string             `json:"instance_id"`
	CreatorID     string             `json:"creator_id"`
	CreatorHandle string             `json:"creator_handle"`
	Caption       string             `json:"caption"`
	MediaKind     database.MediaKind `json:"media_kind"`
	VideoURL      string             `json:"video_url,omitempty"`
	ImageURLs     []string           `json:"image_urls,omitempty"`
	Category      string             `json:"category"`
	Monetized     bool               `json:"monetized"`
	RewardCents   int64              `json:"reward_cents"`
	Likes         int                `json:"likes"`
	Comments      int                `json:"comments"`
	Shares        int                `json:"shares"`
	CreatedAt     time.Time          `json:"created_at"`
}

// FromPost maps a post row to a feed item without an instance id; the
// generator assigns one when the item enters a page.
func FromPost(p database.Post) ContentItem {
	return ContentItem{
		BaseID:        p.ID,
		CreatorID:     p.CreatorID,
		CreatorHandle: p.CreatorHandle,
		Caption:       p.Caption,
		MediaKind:     p.MediaKind,
		VideoURL:      p.VideoURL,
		ImageURLs:     p.ImageURLs,
		Category:      p.Category,
		Monetized:     p.Monetized,
		RewardCents:   p.RewardCents,
		Likes:         p.LikesCount,
		Comments:      p.CommentsCount,
		Shares:        p.SharesCount,
		CreatedAt:     p.CreatedAt,
	}
}

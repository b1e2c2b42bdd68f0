package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dreamlabs/dreams-server/app/account"
	"github.com/dreamlabs/dreams-server/app/cache"
	"github.com/dreamlabs/dreams-server/app/cfg"
	"github.com/dreamlabs/dreams-server/app/content"
	"github.com/dreamlabs/dreams-server/app/database"
	"github.com/dreamlabs/dreams-server/app/feed"
	"github.com/dreamlabs/dreams-server/app/media"
	"github.com/dreamlabs/dreams-server/app/wallet"
)

func NewHandler(accounts *account.Service, feeds *feed.Service, tracker *feed.Tracker,
	wallets *wallet.Service, mediaStore media.Store, c *cache.Cache,
	catalogCache *content.CatalogCache, userRepo database.UserRepository,
	postRepo database.PostRepository) *Handler {
	return &Handler{
		accounts:     accounts,
		feeds:        feeds,
		tracker:      tracker,
		wallets:      wallets,
		mediaStore:   mediaStore,
		cache:        c,
		catalogCache: catalogCache,
		userRepo:     userRepo,
		postRepo:     postRepo,
	}
}

func currentUser(c *gin.Context) *database.User {
	return c.MustGet("user").(*database.User)
}

func (h *Handler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "Dream$",
		"version":     cfg.GetVersion(),
		"description": "Short-form content feed with a simulated watch-to-earn economy",
		"endpoints": map[string]string{
			"register": "/auth/register (POST)",
			"login":    "/auth/login (POST)",
			"feed":     "/api/feed (requires session token)",
			"wallet":   "/api/wallet (requires session token)",
			"health":   "/health",
			"stats":    "/stats",
			"about":    "/how-it-works",
		},
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if userCount, err := h.userRepo.GetUserCount(); err == nil {
		health["users"] = userCount
	}

	if postCount, err := h.postRepo.GetPostCount(); err == nil {
		health["posts"] = postCount
	}

	health["catalog_entries"] = h.catalogCache.GetEntryCount()
	health["cache"] = h.cache.Health()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	key := h.cache.GenerateKey("stats", "global")
	if cached, err := h.cache.Get(key); err == nil && cached != "" {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	stats := map[string]interface{}{
		"catalog_entries": h.catalogCache.GetEntryCount(),
	}

	if userCount, err := h.userRepo.GetUserCount(); err == nil {
		stats["users"] = userCount
	}
	if postCount, err := h.postRepo.GetPostCount(); err == nil {
		stats["posts"] = postCount
	}
	if cacheStats, err := h.cache.GetStats(); err == nil {
		stats["cache_keys"] = cacheStats["key_count"]
	}

	if body, err := json.Marshal(stats); err == nil {
		if err := h.cache.Set(key, body, 30*time.Second); err != nil {
			slog.Debug("Failed to cache stats", "error", err)
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetHowItWorks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": "How Dream$ works",
		"steps": []string{
			"Watch curated sponsored content in your feed.",
			"A reward is credited when you watch a sponsored item to the end.",
			"Each sponsored item pays out once per account.",
			"Withdraw your balance to a bank account once you reach the minimum.",
		},
		"minimum_withdrawal_cents": h.wallets.MinWithdrawal(),
	})
}

// Auth

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing username or password"})
		return
	}

	user, err := h.accounts.Register(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, account.ErrInvalidUsername), errors.Is(err, account.ErrPasswordTooWeak):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			slog.Error("Registration failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		}
		return
	}

	token, _, err := h.accounts.Login(user.Username, req.Password)
	if err != nil {
		slog.Error("Post-registration login failed", "user", user.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  publicProfileJSON(user.Public()),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing username or password"})
		return
	}

	token, user, err := h.accounts.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		slog.Error("Login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  publicProfileJSON(user.Public()),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	user := currentUser(c)
	token := c.MustGet("token").(string)

	if err := h.accounts.Logout(token); err != nil {
		slog.Error("Logout failed", "user", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	// Drop the in-memory engagement session along with the token.
	h.tracker.Forget(user.ID)

	c.Status(http.StatusNoContent)
}

// Feed

func (h *Handler) GetFeed(c *gin.Context) {
	user := currentUser(c)
	tab := feed.ParseTab(c.Query("tab"))
	category := c.Query("category")

	items, err := h.feeds.Page(user.ID, tab, category)
	if err != nil {
		slog.Error("Failed to build feed page", "user", user.ID, "tab", tab, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}

	if pageSize := cfg.Get().FeedPageSize; len(items) > pageSize {
		items = items[:pageSize]
	}

	h.tracker.Observe(user.ID, items)

	if earned, err := h.wallets.EarnedPostIDs(user.ID); err == nil {
		h.tracker.SeedEarned(user.ID, earned)
	} else {
		slog.Warn("Failed to seed earned set", "user", user.ID, "error", err)
	}

	liked, saved, err := h.accounts.EngagementSnapshot(user.ID)
	if err != nil {
		slog.Warn("Failed to load engagement snapshot", "user", user.ID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"tab":      string(tab),
		"category": category,
		"items":    items,
		"liked":    liked,
		"saved":    saved,
	})
}

func (h *Handler) PostVisibilityEvent(c *gin.Context) {
	var ev visibilityEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing instance_id"})
		return
	}

	user := currentUser(c)
	h.tracker.HandleVisibility(user.ID, ev.InstanceID, ev.VisibleFraction)

	c.JSON(http.StatusOK, gin.H{
		"active_instance": h.tracker.ActiveInstance(user.ID),
	})
}

func (h *Handler) PostProgressEvent(c *gin.Context) {
	var ev progressEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing instance_id"})
		return
	}

	user := currentUser(c)
	h.tracker.HandleProgress(user.ID, ev.InstanceID, ev.CurrentTime, ev.Duration)

	c.JSON(http.StatusOK, gin.H{
		"progress":      h.tracker.Progress(user.ID, ev.InstanceID),
		"notifications": h.tracker.Notifications(user.ID),
	})
}

func (h *Handler) PostScrollEvent(c *gin.Context) {
	var ev scrollEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scroll event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"load_more": feed.ShouldLoadMore(ev.ScrollOffset, ev.ViewportHeight, ev.TotalHeight),
	})
}

func (h *Handler) GetNotifications(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.tracker.Notifications(user.ID),
	})
}

// Wallet

func (h *Handler) GetWallet(c *gin.Context) {
	user := currentUser(c)

	balance, err := h.wallets.Balance(user.ID)
	if err != nil {
		slog.Error("Failed to load wallet", "user", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available_cents":          balance.AvailableCents,
		"pending_cents":            balance.PendingCents,
		"total_earned_cents":       balance.TotalEarnedCents,
		"total_withdrawn_cents":    balance.TotalWithdrawnCents,
		"minimum_withdrawal_cents": h.wallets.MinWithdrawal(),
	})
}

func (h *Handler) GetEarnings(c *gin.Context) {
	user := currentUser(c)

	earnings, err := h.wallets.Earnings(user.ID)
	if err != nil {
		slog.Error("Failed to load earnings", "user", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load earnings"})
		return
	}

	list := make([]map[string]interface{}, 0, len(earnings))
	for _, e := range earnings {
		list = append(list, map[string]interface{}{
			"id":           e.ID,
			"post_id":      e.PostID,
			"amount_cents": e.AmountCents,
			"created_at":   e.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"earnings": list, "total": len(list)})
}

func (h *Handler) GetWithdrawals(c *gin.Context) {
	user := currentUser(c)

	withdrawals, err := h.wallets.Withdrawals(user.ID)
	if err != nil {
		slog.Error("Failed to load withdrawals", "user", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load withdrawals"})
		return
	}

	list := make([]map[string]interface{}, 0, len(withdrawals))
	for _, w := range withdrawals {
		list = append(list, map[string]interface{}{
			"id":           w.ID,
			"amount_cents": w.AmountCents,
			"bank_name":    w.BankName,
			"status":       w.Status.String(),
			"created_at":   w.CreatedAt,
			"updated_at":   w.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"withdrawals": list, "total": len(list)})
}

func (h *Handler) PostWithdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing amount_cents"})
		return
	}

	user := currentUser(c)

	id, err := h.wallets.RequestWithdrawal(user.ID, req.AmountCents, req.BankName, req.AccountNumber)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrBelowMinimum):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":                    "Amount is below the minimum withdrawal",
				"minimum_withdrawal_cents": h.wallets.MinWithdrawal(),
			})
		case errors.Is(err, wallet.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient available balance"})
		case errors.Is(err, wallet.ErrMissingBankDetails):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Bank name and account number are required"})
		default:
			slog.Error("Withdrawal request failed", "user", user.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Withdrawal request failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"withdrawal_id": id,
		"status":        database.WithdrawalStatusPending.String(),
	})
}

// Posts

func (h *Handler) CreatePost(c *gin.Context) {
	user := currentUser(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected multipart form"})
		return
	}

	caption := c.PostForm("caption")
	category := c.PostForm("category")

	files := form.File["media"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one media file is required"})
		return
	}

	class, ok := media.MediaClass(files[0].Filename)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unsupported media type"})
		return
	}
	if class == "video" && len(files) > 1 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Video posts accept a single file"})
		return
	}

	var urls []string
	for _, fh := range files {
		fileClass, ok := media.MediaClass(fh.Filename)
		if !ok || fileClass != class {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Mixed or unsupported media types"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
			return
		}

		url, err := h.mediaStore.Save(user.ID, fh.Filename, f)
		f.Close()
		if err != nil {
			slog.Error("Failed to store upload", "user", user.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
			return
		}
		urls = append(urls, url)
	}

	kind := database.MediaKindImage
	videoURL := ""
	var imageURLs []string
	if class == "video" {
		kind = database.MediaKindVideo
		videoURL = urls[0]
	} else {
		imageURLs = urls
	}

	post, err := h.accounts.CreatePost(user.ID, caption, kind, videoURL, imageURLs, category)
	if err != nil {
		if errors.Is(err, account.ErrCaptionTooLong) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Failed to create post", "user", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": feed.FromPost(*post)})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.accounts.ToggleLike, "liked")
}

func (h *Handler) ToggleSave(c *gin.Context) {
	h.toggle(c, h.accounts.ToggleSave, "saved")
}

func (h *Handler) toggle(c *gin.Context, op func(userID, postID string) (bool, error), field string) {
	user := currentUser(c)
	postID := c.Param("id")

	state, err := op(user.ID, postID)
	if err != nil {
		if errors.Is(err, account.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		slog.Error("Engagement toggle failed", "user", user.ID, "post", postID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Engagement update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{field: state})
}

func (h *Handler) RecordShare(c *gin.Context) {
	user := currentUser(c)
	postID := c.Param("id")

	if err := h.accounts.RecordShare(postID); err != nil {
		if errors.Is(err, account.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		slog.Error("Share failed", "user", user.ID, "post", postID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Share failed"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetComments(c *gin.Context) {
	postID := c.Param("id")

	comments, err := h.accounts.Comments(postID, 100)
	if err != nil {
		slog.Error("Failed to load comments", "post", postID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}

	list := make([]map[string]interface{}, 0, len(comments))
	for _, cm := range comments {
		list = append(list, commentJSON(cm))
	}

	c.JSON(http.StatusOK, gin.H{"comments": list, "total": len(list)})
}

func (h *Handler) PostComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing body"})
		return
	}

	user := currentUser(c)
	postID := c.Param("id")

	comment, err := h.accounts.AddComment(user.ID, postID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		case errors.Is(err, account.ErrCommentInvalid):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			slog.Error("Failed to add comment", "user", user.ID, "post", postID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": commentJSON(*comment)})
}

// Creators

func (h *Handler) GetCreator(c *gin.Context) {
	creatorID := c.Param("id")

	profile, posts, err := h.accounts.CreatorProfile(creatorID)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
			return
		}
		slog.Error("Failed to load creator", "creator", creatorID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load creator"})
		return
	}

	items := make([]feed.ContentItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, feed.FromPost(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"creator": publicProfileJSON(*profile),
		"posts":   items,
	})
}

func (h *Handler) Follow(c *gin.Context) {
	user := currentUser(c)
	creatorID := c.Param("id")

	if err := h.accounts.Follow(user.ID, creatorID); err != nil {
		slog.Error("Follow failed", "user", user.ID, "creator", creatorID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Follow failed"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Unfollow(c *gin.Context) {
	user := currentUser(c)
	creatorID := c.Param("id")

	if err := h.accounts.Unfollow(user.ID, creatorID); err != nil {
		slog.Error("Unfollow failed", "user", user.ID, "creator", creatorID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unfollow failed"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Profile and settings

func (h *Handler) GetProfile(c *gin.Context) {
	user := currentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"bio":          user.Bio,
		"avatar_url":   user.AvatarURL,
		"created_at":   user.CreatedAt,
	})
}

func (h *Handler) PatchProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile payload"})
		return
	}

	user := currentUser(c)

	if err := h.accounts.UpdateProfile(user.ID, req.DisplayName, req.Bio, req.AvatarURL); err != nil {
		switch {
		case errors.Is(err, account.ErrDisplayNameLong), errors.Is(err, account.ErrBioTooLong):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			slog.Error("Profile update failed", "user", user.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile update failed"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetSettings(c *gin.Context) {
	user := currentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"autoplay_enabled":      user.AutoplayEnabled,
		"notifications_enabled": user.NotificationsEnabled,
	})
}

func (h *Handler) PatchSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload"})
		return
	}

	user := currentUser(c)

	autoplay := user.AutoplayEnabled
	if req.AutoplayEnabled != nil {
		autoplay = *req.AutoplayEnabled
	}
	notifications := user.NotificationsEnabled
	if req.NotificationsEnabled != nil {
		notifications = *req.NotificationsEnabled
	}

	if err := h.accounts.UpdateSettings(user.ID, autoplay, notifications); err != nil {
		slog.Error("Settings update failed", "user", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Settings update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"autoplay_enabled":      autoplay,
		"notifications_enabled": notifications,
	})
}

// Messages

func (h *Handler) GetRecentConversations(c *gin.Context) {
	user := currentUser(c)

	messages, err := h.accounts.RecentConversations(user.ID, 50)
	if err != nil {
		slog.Error("Failed to load conversations", "user", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": messagesJSON(messages)})
}

func (h *Handler) GetConversation(c *gin.Context) {
	user := currentUser(c)
	otherID := c.Param("id")

	messages, err := h.accounts.Conversation(user.ID, otherID, 100)
	if err != nil {
		slog.Error("Failed to load conversation", "user", user.ID, "other", otherID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messagesJSON(messages)})
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing body"})
		return
	}

	user := currentUser(c)
	otherID := c.Param("id")

	message, err := h.accounts.SendMessage(user.ID, otherID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		case errors.Is(err, account.ErrCommentInvalid):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			slog.Error("Failed to send message", "user", user.ID, "other", otherID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": messageJSON(*message)})
}

// Response helpers

func publicProfileJSON(p database.PublicProfile) map[string]interface{} {
	return map[string]interface{}{
		"id":           p.ID,
		"username":     p.Username,
		"display_name": p.DisplayName,
		"bio":          p.Bio,
		"avatar_url":   p.AvatarURL,
		"created_at":   p.CreatedAt,
	}
}

func commentJSON(cm database.Comment) map[string]interface{} {
	return map[string]interface{}{
		"id":         cm.ID,
		"post_id":    cm.PostID,
		"user_id":    cm.UserID,
		"username":   cm.Username,
		"body":       cm.Body,
		"created_at": cm.CreatedAt,
	}
}

func messageJSON(m database.Message) map[string]interface{} {
	return map[string]interface{}{
		"id":           m.ID,
		"sender_id":    m.SenderID,
		"recipient_id": m.RecipientID,
		"body":         m.Body,
		"created_at":   m.CreatedAt,
	}
}

func messagesJSON(messages []database.Message) []map[string]interface{} {
	list := make([]map[string]interface{}, 0, len(messages))
	for _, m := range messages {
		list = append(list, messageJSON(m))
	}
	return list
}

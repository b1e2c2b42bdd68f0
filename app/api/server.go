package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dreamlabs/dreams-server/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	if cfg.Get().Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for the mobile client
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Session-Token")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	// Public endpoints
	r.GET("/", handler.GetRoot)
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)
	r.GET("/how-it-works", handler.GetHowItWorks)

	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)

	// Uploaded media
	r.Static("/media", cfg.Get().MediaDir)

	// Session-gated endpoints
	api := r.Group("/api")
	api.Use(sessionMiddleware(handler))
	{
		api.POST("/auth/logout", handler.Logout)

		api.GET("/feed", handler.GetFeed)
		api.POST("/feed/events/visibility", handler.PostVisibilityEvent)
		api.POST("/feed/events/progress", handler.PostProgressEvent)
		api.POST("/feed/events/scroll", handler.PostScrollEvent)
		api.GET("/feed/notifications", handler.GetNotifications)

		api.GET("/wallet", handler.GetWallet)
		api.GET("/wallet/earnings", handler.GetEarnings)
		api.GET("/wallet/withdrawals", handler.GetWithdrawals)
		api.POST("/wallet/withdraw", handler.PostWithdraw)

		api.POST("/posts", handler.CreatePost)
		api.POST("/posts/:id/like", handler.ToggleLike)
		api.POST("/posts/:id/save", handler.ToggleSave)
		api.POST("/posts/:id/share", handler.RecordShare)
		api.GET("/posts/:id/comments", handler.GetComments)
		api.POST("/posts/:id/comments", handler.PostComment)

		api.GET("/creators/:id", handler.GetCreator)
		api.POST("/creators/:id/follow", handler.Follow)
		api.DELETE("/creators/:id/follow", handler.Unfollow)

		api.GET("/profile", handler.GetProfile)
		api.PATCH("/profile", handler.PatchProfile)
		api.GET("/settings", handler.GetSettings)
		api.PATCH("/settings", handler.PatchSettings)

		api.GET("/messages", handler.GetRecentConversations)
		api.GET("/messages/:id", handler.GetConversation)
		api.POST("/messages/:id", handler.SendMessage)

		// Aliases kept for older client builds
		api.GET("/home", handler.GetFeed)
		api.GET("/earn", handler.GetWallet)
	}

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

// sessionMiddleware resolves the session token to a user and aborts
// unauthenticated requests.
func sessionMiddleware(handler *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Session-Token")

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Session token required",
				"message": "Provide a token in X-Session-Token header or Authorization: Bearer <token>",
			})
			c.Abort()
			return
		}

		user, err := handler.accounts.Authenticate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session",
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("token", token)
		c.Next()
	}
}

package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"dreams_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"dreams_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"dreams" description:"Database name"`

	// Application configuration
	ContentDir        string `long:"content-dir" env:"CONTENT_DIR" default:"./content" description:"Directory containing curated content catalog files"`
	MediaDir          string `long:"media-dir" env:"MEDIA_DIR" default:"./media" description:"Directory for uploaded media files"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl           string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://api.dreams.example.com)"`
	RedisAddr         string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"Redis address for sessions and feed page cache"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for task processing"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"30" description:"Scheduler interval in seconds"`
	SessionTTLHours   int    `long:"session-ttl" env:"SESSION_TTL_HOURS" default:"72" description:"Session lifetime in hours"`

	// Economy configuration
	MinWithdrawal int64 `long:"min-withdrawal" env:"MIN_WITHDRAWAL" default:"10000" description:"Minimum withdrawal amount in cents"`
	FeedPageSize  int   `long:"feed-page-size" env:"FEED_PAGE_SIZE" default:"10" description:"Number of content items per feed page"`
	HistoryLimit  int   `long:"history-limit" env:"HISTORY_LIMIT" default:"50" description:"Maximum earning/withdrawal history entries kept per user"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:            raw.DBHost,
		DBPort:            raw.DBPort,
		DBUser:            raw.DBUser,
		DBPassword:        raw.DBPassword,
		DBName:            raw.DBName,
		ContentDir:        raw.ContentDir,
		MediaDir:          raw.MediaDir,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		RedisAddr:         raw.RedisAddr,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		SessionTTLHours:   raw.SessionTTLHours,
		MinWithdrawal:     raw.MinWithdrawal,
		FeedPageSize:      raw.FeedPageSize,
		HistoryLimit:      raw.HistoryLimit,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}

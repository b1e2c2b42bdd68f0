package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	ContentDir        string
	MediaDir          string
	Port              string
	BaseUrl           string
	RedisAddr         string
	WorkerCount       int
	SchedulerInterval int
	SessionTTLHours   int

	// Economy configuration (amounts in cents)
	MinWithdrawal int64
	FeedPageSize  int
	HistoryLimit  int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

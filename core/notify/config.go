package notify

// Config holds configuration for recompute notifications.
type Config struct {
	// RedisURL is the Redis connection string. Empty disables Redis publishing.
	RedisURL string `mapstructure:"redis_url" default:""`
	// Channel is the pub/sub channel events are published to.
	Channel string `mapstructure:"channel" default:"trolley.recompute"`
	// TimeoutSeconds bounds connection establishment and each publish.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}

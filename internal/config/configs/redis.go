package configs

// Redis holds configuration for the Redis connection backing the
// publish reconciliation queue. QueueKey names the list reconciliation
// tasks are pushed onto.
type Redis struct {
	Addr     string `env:"ADDRESS" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
	QueueKey string `env:"QUEUE_KEY" envDefault:"publish:reconcile"`
}

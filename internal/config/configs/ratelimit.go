package configs

import "time"

// RateLimit configures the fixed-window publish quota per user. The
// counters are process-local: in a multi-instance deployment the
// effective quota is per instance, never unlimited and never zero.
type RateLimit struct {
	PublishLimit  int           `env:"PUBLISH_LIMIT" envDefault:"5"`
	PublishWindow time.Duration `env:"PUBLISH_WINDOW" envDefault:"1m"`
}

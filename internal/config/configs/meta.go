package configs

import "time"

// Meta holds configuration for the ad platform's Graph API. Timeout is
// applied to every outbound call; a timed-out submission is treated the
// same as a rejected one.
type Meta struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://graph.facebook.com"`
	Version string        `env:"VERSION" envDefault:"v19.0"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

package config

import "time"

type Auction struct {
	SoftCloseWindow    time.Duration `env:"AUCTION_SOFT_CLOSE_WINDOW" envDefault:"5m"`
	SoftCloseExtension time.Duration `env:"AUCTION_SOFT_CLOSE_EXTENSION" envDefault:"5m"`
	ActivityWindow     time.Duration `env:"AUCTION_ACTIVITY_WINDOW" envDefault:"15m"`
	CommitRetries      int           `env:"AUCTION_COMMIT_RETRIES" envDefault:"5"`
	TickInterval       time.Duration `env:"AUCTION_TICK_INTERVAL" envDefault:"30s"`
}

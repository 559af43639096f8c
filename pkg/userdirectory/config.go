package userdirectory

import "time"

const (
	BackendDatabase = "database"
	BackendHTTP     = "http"
	BackendMemory   = "memory"
)

type Config struct {
	Backend string        `mapstructure:"backend"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	APIKey  string        `mapstructure:"api_key"`
	// SeedUsers lists the user ids known to the memory backend.
	SeedUsers []int64 `mapstructure:"seed_users"`
}

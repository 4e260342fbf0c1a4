package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv loads .env into the process environment. A missing file is not an error;
// variables can be set by other means.
func LoadEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

package config

import (
	"os"
	"strings"
	"sync"
)

type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"

	DefaultEnvironment = Development
)

var currentEnvironment Environment

// envOnce is used to ensure concurrent tests only pull the value once at startup. While it is
// mainly used for tests, it also ensures safely with the chance the value is overwritten during
// runtime.
var envOnce sync.Once

// GetCurrentEnvironment returns the environment named by the environment
// variable, defaulting to development for anything unknown.
func GetCurrentEnvironment() Environment {
	envOnce.Do(func() {
		value := Environment(strings.ToLower(os.Getenv("environment")))

		switch value {
		case Development, Staging, Production:
			currentEnvironment = value
		default:
			currentEnvironment = DefaultEnvironment
		}
	})

	return currentEnvironment
}

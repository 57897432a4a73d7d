package server

import (
	"log"
	"runtime"
	"strconv"
	"strings"
)

// Environment variables read by LoadConfig.
const (
	EnvLogLevel         = "DOMAINCOLOR_MCP_LOG_LEVEL"
	EnvWorkers          = "DOMAINCOLOR_MCP_WORKERS"
	EnvMaxPixels        = "DOMAINCOLOR_MCP_MAX_PIXELS"
	EnvSerialize        = "DOMAINCOLOR_MCP_SERIALIZE"
	EnvBatchConcurrency = "DOMAINCOLOR_MCP_BATCH_CONCURRENCY"
)

// DefaultMaxPixels caps a single plot at 4096x4096 samples.
const DefaultMaxPixels = 4096 * 4096

// Config holds the server settings that come from the environment.
type Config struct {
	// LogLevel is "debug" to enable per-request logging.
	LogLevel string

	// Workers is the evaluation worker count. 0 lets the evaluator
	// partition rows across all CPUs; 1 evaluates sequentially.
	Workers int

	// MaxPixels bounds nx*ny for one plot.
	MaxPixels int

	// Serialize forces calls into the compiled expression through a mutex.
	Serialize bool

	// BatchConcurrency is how many plots of a batch render at once.
	BatchConcurrency int
}

// DefaultConfig returns the settings used when no variables are set.
func DefaultConfig() Config {
	return Config{
		LogLevel:         "info",
		MaxPixels:        DefaultMaxPixels,
		BatchConcurrency: runtime.NumCPU(),
	}
}

// LoadConfig reads the configuration through getenv (normally os.Getenv).
// Malformed values are logged and replaced with the default.
func LoadConfig(getenv func(string) string) Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if n, ok := envInt(getenv, EnvWorkers, 0); ok {
		cfg.Workers = n
	}
	if n, ok := envInt(getenv, EnvMaxPixels, 1); ok {
		cfg.MaxPixels = n
	}
	if n, ok := envInt(getenv, EnvBatchConcurrency, 1); ok {
		cfg.BatchConcurrency = n
	}
	if v := strings.TrimSpace(getenv(EnvSerialize)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("Ignoring %s=%q: %v", EnvSerialize, v, err)
		} else {
			cfg.Serialize = b
		}
	}

	return cfg
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}

func envInt(getenv func(string) string, name string, least int) (int, bool) {
	v := strings.TrimSpace(getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < least {
		log.Printf("Ignoring %s=%q: want an integer >= %d", name, v, least)
		return 0, false
	}
	return n, true
}

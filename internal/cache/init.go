package cache

import (
	"github.com/learnhub/learnhub/internal/logger"
)

// Initialize sets up the cache system and returns the shared instance.
func Initialize(log *logger.Logger) *InMemoryCache {
	log.Info("Initializing cache system")
	return GetInMemoryCache()
}

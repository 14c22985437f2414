package constants

import "time"

// Entity cache keys are "entity:<collection>" hashes keyed by entity id.
const (
	EntityCachePrefix = "entity"
	EntityCacheExpiry = 1 * time.Hour
)

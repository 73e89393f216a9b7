package constants

// Redis cache key prefixes. Keys are namespaced per feature so that
// invalidation by pattern stays scoped.
const (
	CacheKeyHotelPrefix  = "stayease:hotels:detail:"  // + hotel ID
	CacheKeySearchPrefix = "stayease:hotels:search:"  // + query hash
	CacheKeyRoomsPrefix  = "stayease:hotels:rooms:"   // + hotel ID

	CachePatternHotels = "stayease:hotels:*"
)

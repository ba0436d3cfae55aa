package constants

// Redis cache keys and invalidation patterns for the event catalog.
const (
	KEY_EVENTS_ALL   = "eventbook:events:all"
	KEY_EVENT_DETAIL = "eventbook:events:detail:" // + event id
	KEY_STATISTICS   = "eventbook:statistics"

	PATTERN_INVALIDATE_EVENTS     = "eventbook:events:*"
	PATTERN_INVALIDATE_STATISTICS = "eventbook:statistics*"
)

package trip

import "time"

// Config tunes the trip service.
type Config struct {
	CacheTTL time.Duration
}

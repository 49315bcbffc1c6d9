// Package lifecycle holds shared start/stop settings for long-lived components.
package lifecycle

import "time"

// DefaultTimeout bounds start-up pings and graceful shutdowns.
const DefaultTimeout = 10 * time.Second

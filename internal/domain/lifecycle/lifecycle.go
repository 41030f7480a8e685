// Package lifecycle holds shared start/stop constants.
package lifecycle

import "time"

// DefaultTimeout bounds start and stop hooks such as pings and graceful shutdown.
const DefaultTimeout = 10 * time.Second

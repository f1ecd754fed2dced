// Package lifecycle holds process lifecycle constants shared by infra and delivery.
package lifecycle

import "time"

// DefaultTimeout bounds startup checks and graceful shutdown steps.
const DefaultTimeout = 10 * time.Second

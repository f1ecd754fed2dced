// Package delivery defines the contract every transport front-end fulfills.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server, worker, ...) managed by the application container.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}

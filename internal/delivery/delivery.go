// Package delivery defines the contract for transport servers.
package delivery

import "context"

// Delivery is a serving transport (HTTP today). Serve blocks until the
// server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}

// Package delivery holds the outward surfaces of the agent.
package delivery

import "context"

// Delivery is a long-running surface started once the graph is built.
type Delivery interface {
	Serve(ctx context.Context) error
}

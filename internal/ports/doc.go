// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by the CLI.
// Outbound ports (tour store, authorizer, delete notifier, cache, translator)
// are implemented by adapters and called by the application layer.
package ports

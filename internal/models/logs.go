// internal/models/logs.go
package models

// DefaultTail is the number of lines returned when the request does not set 'tail'.
const DefaultTail = 200

// LogsQuery holds the validated query parameters of a service logs request.
type LogsQuery struct {
	// Name of the Swarm service (or its ID).
	Name string
	// Tail is "all" or a non-negative line count.
	Tail string
}

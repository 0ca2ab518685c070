// Package uid provides the identifier generators used across the service.
//
// Three shapes are needed: UUID strings for correlation IDs and token IDs,
// high-entropy ObjectID strings for login session tokens handed to clients,
// and snowflake int64s for internal record IDs that show up in logs.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}

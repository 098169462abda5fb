// Package state holds the in-memory reactive state consumed by the
// presentation layer. Containers are mutated only through the named
// transitions below; the service layer decides which transition applies.
package state

// Status tracks the lifecycle of the last async operation that touched
// a container.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

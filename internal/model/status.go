package model

// ItemStatus represents the processing state of a single work item
type ItemStatus string

const (
	// ItemStatusPending means the item is selected but not yet processed
	ItemStatusPending ItemStatus = "pending"

	// ItemStatusDownloading means the capability is working on the item
	ItemStatusDownloading ItemStatus = "downloading"

	// ItemStatusCompleted means the item was processed successfully
	ItemStatusCompleted ItemStatus = "completed"

	// ItemStatusError means processing failed and a failure record was written
	ItemStatusError ItemStatus = "error"

	// ItemStatusSkipped means the archive already holds the item
	ItemStatusSkipped ItemStatus = "skipped"
)

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// IsActive returns true while the item is being processed
func (s ItemStatus) IsActive() bool {
	return s == ItemStatusDownloading
}

// IsFinished returns true if the item reached a terminal state (completed, error, or skipped)
func (s ItemStatus) IsFinished() bool {
	return s == ItemStatusCompleted || s == ItemStatusError || s == ItemStatusSkipped
}

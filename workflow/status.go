package workflow

// Status is a workflow status code reported by the backend pipeline service.
type Status string

const (
	StatusPending      Status = "pending"
	StatusSearching    Status = "searching"
	StatusScreening    Status = "screening"
	StatusSynthesizing Status = "synthesizing"

	// terminal statuses: no further processing happens after these
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
	StatusNeedsReview Status = "needs_review"
)

// IsTerminal reports whether no further processing happens after s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusNeedsReview:
		return true
	}
	return false
}

package project

// Status represents the position of a project in its review workflow.
// Any status may follow any other; only enum membership is enforced.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusAssigned  Status = "assigned"
	StatusSubmitted Status = "submitted"
	StatusInReview  Status = "in_review"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusAssigned, StatusSubmitted, StatusInReview, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

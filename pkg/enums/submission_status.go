package enums

import "fmt"

// SubmissionStatus describes the lifecycle state of a pengajuan.
//
// `menunggu_perbaikan` keeps its Indonesian name because it is the value the
// frontend and the existing database rows use.
type SubmissionStatus string

const (
	SubmissionStatusPending          SubmissionStatus = "pending"
	SubmissionStatusApproved         SubmissionStatus = "approved"
	SubmissionStatusAwaitingRevision SubmissionStatus = "menunggu_perbaikan"
	SubmissionStatusRejected         SubmissionStatus = "rejected"
	SubmissionStatusCompleted        SubmissionStatus = "completed"
)

var validSubmissionStatuses = []SubmissionStatus{
	SubmissionStatusPending,
	SubmissionStatusApproved,
	SubmissionStatusAwaitingRevision,
	SubmissionStatusRejected,
	SubmissionStatusCompleted,
}

func (s SubmissionStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is known.
func (s SubmissionStatus) IsValid() bool {
	for _, candidate := range validSubmissionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status can never be recomputed from documents.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusCompleted
}

// IsActive reports whether a submission still blocks a new one of the same type.
func (s SubmissionStatus) IsActive() bool {
	return s == SubmissionStatusPending || s == SubmissionStatusAwaitingRevision
}

// ParseSubmissionStatus converts raw input into a SubmissionStatus.
func ParseSubmissionStatus(value string) (SubmissionStatus, error) {
	for _, candidate := range validSubmissionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid submission status %q", value)
}

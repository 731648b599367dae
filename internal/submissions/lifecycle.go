package submissions

import (
	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

// NextStatus is the single place the submission status is derived from its
// document set. All transitions funnel through here so the rules cannot drift
// between the review, update, and creation paths.
//
// Rules, in priority order:
//   - `completed` is frozen; nothing recomputes it.
//   - any rejected document moves the submission to the configured rejection
//     outcome (menunggu_perbaikan or rejected).
//   - a non-empty, fully approved document set moves it to approved.
//   - anything else is pending.
func NextStatus(current enums.SubmissionStatus, docs []models.Document, policy enums.RejectionPolicy) enums.SubmissionStatus {
	if current.IsTerminal() {
		return current
	}

	if len(docs) == 0 {
		return enums.SubmissionStatusPending
	}

	allApproved := true
	for _, doc := range docs {
		switch doc.Status {
		case enums.DocumentStatusRejected:
			return policy.Status()
		case enums.DocumentStatusApproved:
		default:
			allApproved = false
		}
	}

	if allApproved {
		return enums.SubmissionStatusApproved
	}
	return enums.SubmissionStatusPending
}

package enums

import "fmt"

// RejectionPolicy selects what a rejected document does to the parent
// submission. Earlier deployments dropped the submission straight to
// `rejected`; current ones park it in `menunggu_perbaikan` so the citizen can
// resubmit. Both behaviors stay selectable via config.
type RejectionPolicy string

const (
	RejectionPolicyAwaitRevision RejectionPolicy = "menunggu_perbaikan"
	RejectionPolicyReject        RejectionPolicy = "rejected"
)

var validRejectionPolicies = []RejectionPolicy{
	RejectionPolicyAwaitRevision,
	RejectionPolicyReject,
}

func (p RejectionPolicy) String() string {
	return string(p)
}

// IsValid reports whether the policy is known.
func (p RejectionPolicy) IsValid() bool {
	for _, candidate := range validRejectionPolicies {
		if candidate == p {
			return true
		}
	}
	return false
}

// Status returns the submission status this policy assigns on rejection.
func (p RejectionPolicy) Status() SubmissionStatus {
	if p == RejectionPolicyReject {
		return SubmissionStatusRejected
	}
	return SubmissionStatusAwaitingRevision
}

// ParseRejectionPolicy converts raw input into a RejectionPolicy.
func ParseRejectionPolicy(value string) (RejectionPolicy, error) {
	for _, candidate := range validRejectionPolicies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rejection policy %q", value)
}

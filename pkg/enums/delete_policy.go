package enums

import (
	"fmt"
	"strings"
)

// DeletePolicy decides what happens to a deleted user's orders and tickets.
type DeletePolicy string

const (
	// DeletePolicyRetain leaves orders and tickets referencing the removed id.
	DeletePolicyRetain DeletePolicy = "retain"
	// DeletePolicyHard removes orders and tickets with the user.
	DeletePolicyHard DeletePolicy = "hard"
	// DeletePolicyAnonymize detaches tickets from the user and keeps orders.
	DeletePolicyAnonymize DeletePolicy = "anonymize"
)

var validDeletePolicies = []DeletePolicy{
	DeletePolicyRetain,
	DeletePolicyHard,
	DeletePolicyAnonymize,
}

// String implements fmt.Stringer.
func (d DeletePolicy) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeletePolicy.
func (d DeletePolicy) IsValid() bool {
	for _, candidate := range validDeletePolicies {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeletePolicy converts raw input into a DeletePolicy. Empty input yields retain.
func ParseDeletePolicy(value string) (DeletePolicy, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return DeletePolicyRetain, nil
	}
	for _, candidate := range validDeletePolicies {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delete policy %q", value)
}

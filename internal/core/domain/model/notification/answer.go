package notification

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Answer is the customer's reply to a confirmation ping.
type Answer bool

const (
	Yes Answer = true
	No  Answer = false
)

// ParseAnswer accepts "yes" or "no" in any letter case.
func ParseAnswer(raw string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		return Yes, nil
	case "no":
		return No, nil
	default:
		return No, errs.NewValueIsInvalidErrorWithCause("response", fmt.Errorf("%q is neither yes nor no", raw))
	}
}

func (a Answer) String() string {
	if a {
		return "yes"
	}
	return "no"
}

package route

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the route lifecycle. Transitions are driven by dispatch actions
// outside this service; routes are created Pending and otherwise only read.
type Status int

const (
	Unknown Status = iota
	Pending
	Active
	Completed
)

func statusNames() map[Status]string {
	return map[Status]string{
		Pending:   "pending",
		Active:    "active",
		Completed: "completed",
	}
}

func (s Status) Validate() error {
	if _, ok := statusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid route status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "unknown"
}

package notification

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Pending
	Responded
	TimedOut
)

func statusNames() map[Status]string {
	return map[Status]string{
		Pending:   "pending",
		Responded: "responded",
		TimedOut:  "timed-out",
	}
}

func (s Status) Validate() error {
	if _, ok := statusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid notification status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == Responded || s == TimedOut
}

func (s Status) leavePending(to Status) (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidStateError("notification", fmt.Sprintf("already %s", s))
	}
	return to, nil
}

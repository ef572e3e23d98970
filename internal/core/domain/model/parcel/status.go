package parcel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the delivery state of a parcel.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending parcels wait for dispatch or for the customer's confirmation.
	Pending

	// InTransit parcels were confirmed by the customer and are on their way.
	InTransit

	// Delivered parcels are done. Nothing in this service moves a parcel out of Delivered.
	Delivered

	// Skipped parcels were declined by the customer or never confirmed in time.
	Skipped
)

func statusNames() map[Status]string {
	return map[Status]string{
		Pending:   "pending",
		InTransit: "in-transit",
		Delivered: "delivered",
		Skipped:   "skipped",
	}
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a parcel status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid parcel status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) IsDelivered() bool {
	return s == Delivered
}

// Confirm is the transition taken on an affirmative customer answer.
func (s Status) Confirm() (Status, error) {
	if s.IsDelivered() {
		return Unknown, errs.NewInvalidStateError("parcel", "delivered parcel cannot be confirmed")
	}
	return InTransit, nil
}

// Skip is the transition taken on a negative answer or an unanswered ping.
func (s Status) Skip() (Status, error) {
	if s.IsDelivered() {
		return Unknown, errs.NewInvalidStateError("parcel", "delivered parcel cannot be skipped")
	}
	return Skipped, nil
}

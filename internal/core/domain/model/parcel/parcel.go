package parcel

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	MinPriority = 1
	MaxPriority = 5
)

var (
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")
	ErrCodeIsRequired         = errs.NewValueIsRequiredError("code")
)

// Parcel is a delivery item owned by a customer. The dispatch core only
// mutates its route reference and its status; everything else is written by
// the parcel catalogue and read here.
type Parcel struct {
	id          kernel.UUID
	code        string
	customerID  kernel.UUID
	driverID    *kernel.UUID
	routeID     *kernel.UUID
	location    kernel.Location
	priority    int
	status      Status
	scheduledAt *time.Time

	guard guard.ConstructorGuard
}

// NewParcel creates a pending parcel with no driver and no route.
func NewParcel(
	id kernel.UUID,
	code string,
	customerID kernel.UUID,
	location kernel.Location,
	priority int,
) (*Parcel, error) {
	p := &Parcel{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setCustomerID(customerID),
		p.setLocation(location),
		p.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel rebuilds a parcel read from storage.
//
// The location is not validated: a stored parcel may carry a missing or
// malformed coordinate, which is passed in as the zero Location and rejected
// only when the parcel is planned into a route.
func RestoreParcel(
	id kernel.UUID,
	code string,
	customerID kernel.UUID,
	driverID *kernel.UUID,
	routeID *kernel.UUID,
	location kernel.Location,
	priority int,
	status Status,
	scheduledAt *time.Time,
) (*Parcel, error) {
	p := &Parcel{
		driverID:    driverID,
		routeID:     routeID,
		location:    location,
		scheduledAt: scheduledAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setCustomerID(customerID),
		p.setPriority(priority),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	p.status = status

	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) Code() string {
	return p.code
}

func (p *Parcel) CustomerID() kernel.UUID {
	return p.customerID
}

func (p *Parcel) DriverID() *kernel.UUID {
	return p.driverID
}

func (p *Parcel) RouteID() *kernel.UUID {
	return p.routeID
}

func (p *Parcel) Location() kernel.Location {
	return p.location
}

func (p *Parcel) Priority() int {
	return p.priority
}

func (p *Parcel) Status() Status {
	return p.status
}

func (p *Parcel) ScheduledAt() *time.Time {
	return p.scheduledAt
}

// IsOnRoute reports whether the parcel's route reference points at routeID.
func (p *Parcel) IsOnRoute(routeID kernel.UUID) bool {
	return p.routeID != nil && p.routeID.IsEqual(routeID)
}

// PlannableLocation returns the parcel's coordinate, or a validation error
// naming the parcel when the stored coordinate is missing or malformed.
func (p *Parcel) PlannableLocation() (kernel.Location, error) {
	if err := p.location.Validate(); err != nil {
		return kernel.Location{}, errs.NewValueIsInvalidErrorWithCause("parcel "+p.id.String()+" location", err)
	}
	return p.location, nil
}

// AttachToRoute points the parcel at routeID.
func (p *Parcel) AttachToRoute(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	p.routeID = &routeID
	return nil
}

// DetachFromRoute clears the route reference if it points at routeID and
// reports whether anything changed. A parcel already moved to another route
// keeps its newer reference.
func (p *Parcel) DetachFromRoute(routeID kernel.UUID) bool {
	if !p.IsOnRoute(routeID) {
		return false
	}
	p.routeID = nil
	return true
}

// Confirm records an affirmative customer answer.
func (p *Parcel) Confirm() error {
	next, err := p.status.Confirm()
	if err != nil {
		return err
	}
	p.status = next
	return nil
}

// Skip records a negative or missing customer answer.
func (p *Parcel) Skip() error {
	next, err := p.status.Skip()
	if err != nil {
		return err
	}
	p.status = next
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrCodeIsRequired
	}
	p.code = code
	return nil
}

func (p *Parcel) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	p.customerID = customerID
	return nil
}

func (p *Parcel) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	p.location = location
	return nil
}

func (p *Parcel) setPriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return errs.NewValueIsOutOfRangeError("priority", priority, MinPriority, MaxPriority)
	}
	p.priority = priority
	return nil
}

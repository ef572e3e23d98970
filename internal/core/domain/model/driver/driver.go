package driver

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")
)

// Driver is read by route assignment. The location is the last known
// position and may be missing.
type Driver struct {
	id        kernel.UUID
	name      string
	phone     string
	location  kernel.Location
	parcelIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewDriver(id kernel.UUID, name string, phone string, location kernel.Location) (*Driver, error) {
	return RestoreDriver(id, name, phone, location, nil)
}

func RestoreDriver(
	id kernel.UUID,
	name string,
	phone string,
	location kernel.Location,
	parcelIDs []kernel.UUID,
) (*Driver, error) {
	d := &Driver{
		phone:    strings.TrimSpace(phone),
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(d.setID(id), d.setName(name)); err != nil {
		return nil, err
	}

	d.parcelIDs = make([]kernel.UUID, len(parcelIDs))
	copy(d.parcelIDs, parcelIDs)
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) Phone() string {
	return d.phone
}

func (d *Driver) Location() kernel.Location {
	return d.location
}

func (d *Driver) ParcelIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(d.parcelIDs))
	copy(out, d.parcelIDs)
	return out
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

package customer

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrNameIsRequired           = errs.NewValueIsRequiredError("name")
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer constructor")
)

// Customer owns parcels and receives confirmation pings on Phone.
type Customer struct {
	id       kernel.UUID
	name     string
	phone    string
	address  string
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewCustomer creates a customer; phone may be empty.
func NewCustomer(id kernel.UUID, name string, phone string, address string, location kernel.Location) (*Customer, error) {
	return RestoreCustomer(id, name, phone, address, location)
}

func RestoreCustomer(id kernel.UUID, name string, phone string, address string, location kernel.Location) (*Customer, error) {
	c := &Customer{
		phone:    strings.TrimSpace(phone),
		address:  strings.TrimSpace(address),
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setID(id), c.setName(name)); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Phone() string {
	return c.phone
}

func (c *Customer) Address() string {
	return c.address
}

func (c *Customer) Location() kernel.Location {
	return c.location
}

// HasContact reports whether the customer can be pinged.
func (c *Customer) HasContact() bool {
	return c.phone != ""
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

package customerrepo

import (
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CustomerDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"not null"`
	Phone   string
	Address string
	Lng     float64
	Lat     float64
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:      c.ID().Bytes(),
		Name:    c.Name(),
		Phone:   c.Phone(),
		Address: c.Address(),
		Lng:     c.Location().Lng(),
		Lat:     c.Location().Lat(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, locErr := kernel.NewLocation(dto.Lng, dto.Lat)
	if locErr != nil {
		loc = kernel.Location{}
	}

	return customer.RestoreCustomer(id, dto.Name, dto.Phone, dto.Address, loc)
}

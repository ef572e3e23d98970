package driverrepo

import (
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type DriverDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"not null"`
	Phone     string
	Lng       float64
	Lat       float64
	ParcelIDs pq.StringArray `gorm:"type:uuid[];not null;default:'{}'"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	parcelIDs := make(pq.StringArray, 0, len(d.ParcelIDs()))
	for _, id := range d.ParcelIDs() {
		parcelIDs = append(parcelIDs, id.String())
	}

	return DriverDTO{
		ID:        d.ID().Bytes(),
		Name:      d.Name(),
		Phone:     d.Phone(),
		Lng:       d.Location().Lng(),
		Lat:       d.Location().Lat(),
		ParcelIDs: parcelIDs,
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelIDs, err := kernel.UUIDsFromStrings(dto.ParcelIDs)
	if err != nil {
		return nil, err
	}

	// A driver without a position still loads; nothing here plans from it.
	loc, locErr := kernel.NewLocation(dto.Lng, dto.Lat)
	if locErr != nil {
		loc = kernel.Location{}
	}

	return driver.RestoreDriver(id, dto.Name, dto.Phone, loc, parcelIDs)
}

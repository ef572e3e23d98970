// Package parcelrepo persists parcels. Only the route reference and the
// status are ever updated; every other column is written once on Add.
package parcelrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

type ParcelDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Code        string      `gorm:"not null"`
	CustomerID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	DriverID    *uuid.UUID  `gorm:"type:uuid;index"`
	RouteID     *uuid.UUID  `gorm:"type:uuid;index"`
	Location    LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Priority    int         `gorm:"not null"`
	Status      int         `gorm:"not null"`
	ScheduledAt *time.Time
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// LocationDTO allows NULL coordinates: parcels are created by other systems
// and may arrive without a usable position.
type LocationDTO struct {
	Lng *float64
	Lat *float64
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:          p.ID().Bytes(),
		Code:        p.Code(),
		CustomerID:  p.CustomerID().Bytes(),
		DriverID:    rawID(p.DriverID()),
		RouteID:     rawID(p.RouteID()),
		Location:    locationFromDomain(p.Location()),
		Priority:    p.Priority(),
		Status:      int(p.Status()),
		ScheduledAt: p.ScheduledAt(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := domainID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	routeID, err := domainID(dto.RouteID)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(id, dto.Code, customerID, driverID, routeID, dto.Location.toDomain(), dto.Priority,
		parcel.Status(dto.Status), dto.ScheduledAt)
}

func locationFromDomain(loc kernel.Location) LocationDTO {
	if loc.Validate() != nil {
		return LocationDTO{}
	}
	lng, lat := loc.Lng(), loc.Lat()
	return LocationDTO{Lng: &lng, Lat: &lat}
}

// toDomain yields the zero Location when a coordinate is missing or out of
// range; such parcels load fine and are rejected when planned.
func (l LocationDTO) toDomain() kernel.Location {
	if l.Lng == nil || l.Lat == nil {
		return kernel.Location{}
	}
	loc, err := kernel.NewLocation(*l.Lng, *l.Lat)
	if err != nil {
		return kernel.Location{}
	}
	return loc
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

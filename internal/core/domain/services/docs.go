// Package services holds domain services that span several aggregates.
//
// RouteLinker maintains the two-way link between routes and parcels: a parcel
// points at a route exactly when that route lists the parcel.
package services

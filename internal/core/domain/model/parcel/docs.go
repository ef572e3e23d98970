// Package parcel contains the Parcel aggregate.
//
// A parcel moves pending -> in-transit or pending -> skipped in response to the
// customer's confirmation (or the lack of one). Delivered parcels are never
// moved by this service. The route reference is kept in step with the route's
// parcel set by the route consistency command handlers.
package parcel

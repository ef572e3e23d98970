package commands

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrParcelsAreRequired = errs.NewValueIsRequiredError("parcels")

// checkParcelIDs requires a non-empty list of valid, distinct ids and returns a copy.
func checkParcelIDs(ids []kernel.UUID) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return nil, ErrParcelsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(ids))
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("parcels", err)
		}
		if _, dup := seen[id]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("parcels", fmt.Errorf("parcel %s is listed twice", id))
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

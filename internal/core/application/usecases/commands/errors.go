package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
)

func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound)
}

// Package errs provides the error taxonomy shared by the dispatch service.
//
// Each error type pairs a sentinel (for errors.Is) with a struct carrying
// details (for errors.As):
//   - ObjectNotFoundError: a parcel, driver, route, customer or notification is missing
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - InvalidStateError: the operation is not allowed in the object's current state
//   - PersistenceError: unexpected storage failure
//
// The HTTP adapter maps these classes to status codes; see
// internal/adapters/in/http.
package errs

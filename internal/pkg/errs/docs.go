// Package errs defines the structured error types shared by the domain model
// and the adapters: missing values, invalid values, out-of-range values and
// lookups that found nothing.
//
// Every type pairs a sentinel (ErrObjectNotFound, ErrValueIsRequired, ...)
// with a struct carrying the parameter name and an optional cause, so callers
// classify failures with errors.Is while log lines keep the detail. The HTTP
// layer maps these sentinels onto status codes; repositories translate driver
// errors into them at the boundary.
package errs

// Package errs provides the typed errors shared by the ordering service.
//
// Every error kind follows the same shape:
//   - a sentinel (ErrValueIsInvalid, ErrObjectNotFound, ...) usable with errors.Is
//   - a struct carrying the details of the failure
//   - New...Error and New...ErrorWithCause constructors
//   - Error() for a single-line message and Unwrap() returning the sentinel
//
// Domain packages declare their own named sentinels on top of these kinds
// (for example cart.ErrInvalidQuantity), so callers can match either the
// precise condition or the broad category.
package errs

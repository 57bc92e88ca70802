// Package errs holds the typed validation and lookup errors shared by the
// domain model, the use cases and the postgres adapters.
//
// Each error type unwraps to a sentinel so callers classify with errors.Is:
//   - ObjectNotFoundError unwraps to ErrObjectNotFound (unknown product or assignment)
//   - ValueIsInvalidError unwraps to ErrValueIsInvalid (blank SKU, bad email, malformed id)
//   - ValueIsOutOfRangeError unwraps to ErrValueIsOutOfRange (negative stock, zero quantity)
//   - ValueIsRequiredError unwraps to ErrValueIsRequired (missing driver, missing destination)
//
// The HTTP adapter maps ErrObjectNotFound to 404 and the remaining sentinels to 400.
// Values echoed into messages are sanitized so user input cannot forge log lines.
package errs

// Package errs define custom error types and utilities.
//
// Its purpose is to give every failure that leaves the API one
// consistent shape: a JSON object with a single "detail" key. The
// detail is a plain string for most errors and a list of field-level
// violations for request validation failures.
package errs

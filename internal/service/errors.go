package service

import "errors"

// Error kinds reported by the services. Callers match them with errors.Is;
// anything else coming out of a service is an internal failure.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrBadRequest    = errors.New("bad request")
	ErrUnprocessable = errors.New("unprocessable")
)

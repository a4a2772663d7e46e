package services

import "errors"

var (
	// ErrMissingToken means a successful login or registration reply carried
	// no bearer token. This is a backend protocol violation.
	ErrMissingToken = errors.New("auth response has no token")

	// ErrSuperseded means a newer session operation finished first and this
	// one's result was dropped.
	ErrSuperseded = errors.New("superseded by a newer session operation")

	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidItem      = errors.New("cart item has no id")
)

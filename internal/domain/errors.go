package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

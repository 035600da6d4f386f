package models

import "errors"

// Sentinel errors shared by the repository, the search service and the HTTP layer
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrRateLimited     = errors.New("rate limited")
)

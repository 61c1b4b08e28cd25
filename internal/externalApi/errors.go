package externalApi

import "errors"

var (
	ErrNotFound    = errors.New("not found in external api")
	ErrRateLimited = errors.New("external api rate limited")
)

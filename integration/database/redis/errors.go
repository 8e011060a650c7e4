package redis

import "errors"

// Sentinel errors for connection management; check with errors.Is.
var (
	ErrEmptyConnectionURL      = errors.New("empty redis connection URL")
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")
	ErrNotReady                = errors.New("redis did not become ready")
	ErrHealthcheckFailed       = errors.New("redis healthcheck failed")
)

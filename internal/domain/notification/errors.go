package notification

import "errors"

var (
	ErrStreamingUnsupported = errors.New("streaming is not supported by this connection")
	ErrInvalidSSEToken      = errors.New("invalid or expired stream token")
)

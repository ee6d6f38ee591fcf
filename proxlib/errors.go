package proxlib

import "errors"

var (
	// ErrInvalidState is returned if a lifecycle operation is called
	// out of order: stages go Uninitialized -> Fetched -> Sampled ->
	// Resolved and only Reset can rewind.
	ErrInvalidState = errors.New("operation is not valid in the current state")

	// ErrMalformedLine is returned if a line of the proxy list does not
	// look like ip:port.
	ErrMalformedLine = errors.New("line does not contain ip:port")
)

package state

import "errors"

// ErrNonPositiveRequest is signalled to a subscriber whose subscription received
// a Request for zero or fewer items. The subscription is cancelled.
var ErrNonPositiveRequest = errors.New("state: request must be positive")

package googledir

import "errors"

// ErrConnectivity wraps failures to reach the Google Directory API.
// Connectivity failures abort the whole import run.
var ErrConnectivity = errors.New("google directory connectivity failure")

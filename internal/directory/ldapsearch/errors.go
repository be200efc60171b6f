package ldapsearch

import "errors"

// ErrConnectivity wraps failures to establish or keep the LDAP session.
// Connectivity failures abort the whole import run.
var ErrConnectivity = errors.New("ldap connectivity failure")

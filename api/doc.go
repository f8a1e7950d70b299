// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package api defines the cross-package contracts of the reax library:
// the connection handler invoked by the TCP server and the generic ring
// buffer contract implemented by the buffer package.
package api

// File: server/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package server implements a readiness-driven TCP server on top of the
// reactor. The listen socket and every accepted connection are
// non-blocking; all I/O happens in reactor callbacks on the dispatch
// goroutine. Each connection owns a pair of ByteBuffers and a user
// ConnectionHandler whose Poll hook consumes inbound bytes and produces
// outbound ones.
package server

// File: api/handler.go
// Package api defines the ConnectionHandler contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "github.com/momentics/reax/buffer"

// ConnectionHandler is the per-connection protocol hook supplied by the user.
//
// Poll is invoked on the reactor thread at most once per read-readiness
// event, after newly arrived bytes have been appended to in. The handler may
// consume any prefix of in and append any bytes to out; out is drained to the
// socket after Poll returns. Poll must not block and must not retain either
// buffer past the call.
type ConnectionHandler interface {
	Poll(in *buffer.ByteBuffer, out *buffer.ByteBuffer)
}

// HandlerFactory produces a fresh ConnectionHandler for every accepted
// connection.
type HandlerFactory func() ConnectionHandler

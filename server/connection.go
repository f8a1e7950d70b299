// File: server/connection.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"github.com/google/uuid"

	"github.com/momentics/reax/api"
	"github.com/momentics/reax/buffer"
)

// Connection is the per-client record: its socket, the buffer pair, and the
// user handler. Buffers belong to the connection; the handler must not
// retain them past a Poll call.
type Connection struct {
	id      uuid.UUID
	fd      int
	rd      *buffer.ByteBuffer
	wr      *buffer.ByteBuffer
	handler api.ConnectionHandler

	// carry holds outbound bytes the kernel refused mid-slice, flushed
	// ahead of the write buffer on the next drain.
	carry []byte
}

func newConnection(fd int, handler api.ConnectionHandler) *Connection {
	return &Connection{
		id:      uuid.New(),
		fd:      fd,
		rd:      buffer.NewByteBuffer(),
		wr:      buffer.NewByteBuffer(),
		handler: handler,
	}
}

// ID returns the connection's identifier, as used in log records.
func (c *Connection) ID() uuid.UUID {
	return c.id
}

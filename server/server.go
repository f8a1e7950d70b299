// File: server/server.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/reax/api"
	"github.com/momentics/reax/reactor"
)

const defaultBacklog = 128

// readChunk is the stack scratch size for socket reads and the slice
// granularity for write draining.
const readChunk = 4096

// Server is a readiness-driven IPv4 TCP server bound to one reactor.
type Server struct {
	addr    string
	factory api.HandlerFactory
	backlog int
	logger  *slog.Logger

	reactor  *reactor.Reactor
	listenFd int

	mu    sync.RWMutex
	conns map[int]*Connection
}

// New constructs a server for addr ("host:port"; port 0 picks an ephemeral
// port) with a handler factory invoked once per accepted connection.
func New(addr string, factory api.HandlerFactory, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		factory:  factory,
		backlog:  defaultBacklog,
		logger:   slog.Default(),
		listenFd: -1,
		conns:    make(map[int]*Connection),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve binds the listen socket, registers it with the reactor and spawns
// the dispatch goroutine. Bind and listen failures (EADDRINUSE, EACCES and
// the usual socket errors) are returned to the caller.
func (s *Server) Serve() error {
	r, err := reactor.New(s.logger)
	if err != nil {
		return fmt.Errorf("server: reactor: %w", err)
	}
	s.reactor = r

	fd, err := newListenSocket()
	if err != nil {
		return fmt.Errorf("server: socket: %w", err)
	}
	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)

	sa, err := resolveSockaddr(s.addr)
	if err != nil {
		unix.Close(fd)
		return err
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return fmt.Errorf("server: bind %s: %w", s.addr, err)
	}
	if err := unix.Listen(fd, s.backlog); err != nil {
		unix.Close(fd)
		return fmt.Errorf("server: listen: %w", err)
	}
	s.listenFd = fd

	if err := s.reactor.Register(fd, reactor.InterestRead, nil, s.acceptReady); err != nil {
		unix.Close(fd)
		return fmt.Errorf("server: register listener: %w", err)
	}
	if err := s.reactor.Spawn(); err != nil {
		return err
	}
	s.logger.Info("server listening", "addr", s.Addr())
	return nil
}

// Join blocks until the reactor's dispatch goroutine has been asked to stop
// and has exited.
func (s *Server) Join() {
	if s.reactor != nil {
		s.reactor.Join()
	}
}

// Close joins the reactor, tears down every open connection, and releases
// the listen socket and the kernel event facility.
func (s *Server) Close() error {
	if s.reactor != nil {
		s.reactor.Join()
	}
	s.mu.Lock()
	for fd, c := range s.conns {
		unix.Close(fd)
		delete(s.conns, fd)
		s.logger.Debug("connection closed on shutdown", "conn_id", c.id)
	}
	s.mu.Unlock()
	if s.listenFd >= 0 {
		unix.Close(s.listenFd)
		s.listenFd = -1
	}
	if s.reactor != nil {
		return s.reactor.Close()
	}
	return nil
}

// Addr returns the bound listen address, with the kernel-assigned port when
// the server was constructed with port 0.
func (s *Server) Addr() string {
	if s.listenFd < 0 {
		return s.addr
	}
	sa, err := unix.Getsockname(s.listenFd)
	if err != nil {
		return s.addr
	}
	sa4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return s.addr
	}
	return net.JoinHostPort(net.IP(sa4.Addr[:]).String(), strconv.Itoa(sa4.Port))
}

// ActiveConnections returns the number of currently open connections.
func (s *Server) ActiveConnections() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}

// acceptReady drains the accept queue on listen-socket read readiness.
// Each new connection gets fresh buffers, a handler from the factory, and a
// deferred registration for read and write readiness.
func (s *Server) acceptReady(h *reactor.Handle, ev reactor.Event, _ any) {
	for {
		nfd, err := acceptConn(s.listenFd)
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return
		}
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			s.logger.Warn("accept failed", "error", err)
			return
		}
		c := newConnection(nfd, s.factory())
		s.mu.Lock()
		s.conns[nfd] = c
		s.mu.Unlock()
		h.Register(nfd, reactor.InterestRead|reactor.InterestWrite, c, s.connReady)
		s.logger.Debug("connection accepted", "conn_id", c.id, "fd", nfd)
	}
}

// connReady dispatches a connection's readiness event.
func (s *Server) connReady(h *reactor.Handle, ev reactor.Event, data any) {
	c, ok := data.(*Connection)
	if !ok {
		return
	}
	if ev.Readable {
		s.readReady(h, ev, c)
		return
	}
	if ev.Writable {
		s.writeReady(h, ev, c)
	}
}

// readReady pulls everything the kernel has for the connection into its
// read buffer and, if any bytes arrived, invokes the user handler once and
// then drains the write buffer to the socket. An event that delivers only
// EOF closes the connection without calling the handler.
func (s *Server) readReady(h *reactor.Handle, ev reactor.Event, c *Connection) {
	var scratch [readChunk]byte
	eof := false
	gotData := false

	if ev.Available > 0 {
		// kqueue reports the readable byte count; consume exactly that.
		remaining := ev.Available
		for remaining > 0 {
			n, err := unix.Read(c.fd, scratch[:])
			if n > 0 {
				c.rd.Append(scratch[:n])
				remaining -= int64(n)
				gotData = true
				continue
			}
			if err == unix.EINTR {
				continue
			}
			if n == 0 {
				eof = true
			} else if err != unix.EAGAIN && err != unix.EWOULDBLOCK {
				s.logger.Warn("read failed", "conn_id", c.id, "error", err)
				eof = true
			}
			break
		}
		eof = eof || ev.EOF
	} else {
		// epoll: read until the kernel runs dry or a zero-byte read
		// signals EOF.
		for {
			n, err := unix.Read(c.fd, scratch[:])
			if n > 0 {
				c.rd.Append(scratch[:n])
				gotData = true
				continue
			}
			if err == unix.EINTR {
				continue
			}
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				break
			}
			if n == 0 {
				eof = true
			} else {
				s.logger.Warn("read failed", "conn_id", c.id, "error", err)
				eof = true
			}
			break
		}
	}

	if gotData {
		c.handler.Poll(c.rd, c.wr)
		s.drainWrites(c)
	}
	if eof {
		s.closeConn(h, c)
	}
}

// writeReady is a placeholder: draining happens after Poll inside the read
// path, so write readiness currently needs no action.
func (s *Server) writeReady(h *reactor.Handle, ev reactor.Event, c *Connection) {
}

// drainWrites pushes the connection's write buffer to the socket until it
// is empty or the kernel refuses more. Bytes refused mid-slice are carried
// over so stream order is preserved across drains.
func (s *Server) drainWrites(c *Connection) {
	for len(c.carry) > 0 {
		n, err := unix.Write(c.fd, c.carry)
		if n > 0 {
			c.carry = c.carry[n:]
			continue
		}
		if err == unix.EINTR {
			continue
		}
		if err != unix.EAGAIN && err != unix.EWOULDBLOCK {
			s.logger.Warn("write failed", "conn_id", c.id, "error", err)
		}
		return
	}
	for {
		sl, ok := c.wr.GetSlice(readChunk)
		if !ok {
			return
		}
		off := 0
		for off < len(sl) {
			n, err := unix.Write(c.fd, sl[off:])
			if n > 0 {
				off += n
				continue
			}
			if err == unix.EINTR {
				continue
			}
			if err != unix.EAGAIN && err != unix.EWOULDBLOCK {
				s.logger.Warn("write failed", "conn_id", c.id, "error", err)
			}
			c.carry = append(c.carry[:0], sl[off:]...)
			return
		}
	}
}

// closeConn tears down one connection: kernel deregistration is deferred
// through the handle, the descriptor is closed, and the record dropped.
func (s *Server) closeConn(h *reactor.Handle, c *Connection) {
	h.Unregister(c.fd)
	unix.Close(c.fd)
	s.mu.Lock()
	delete(s.conns, c.fd)
	s.mu.Unlock()
	s.logger.Debug("connection closed", "conn_id", c.id)
}

// resolveSockaddr parses "host:port" into an IPv4 socket address. An empty
// host binds all interfaces.
func resolveSockaddr(addr string) (*unix.SockaddrInet4, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("server: address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return nil, fmt.Errorf("server: invalid port %q", portStr)
	}
	sa := &unix.SockaddrInet4{Port: port}
	if host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return nil, fmt.Errorf("server: invalid host %q", host)
		}
		ip4 := ip.To4()
		if ip4 == nil {
			return nil, fmt.Errorf("server: not an IPv4 address: %q", host)
		}
		copy(sa.Addr[:], ip4)
	}
	return sa, nil
}

// File: server/sock_bsd.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Darwin has no SOCK_NONBLOCK/SOCK_CLOEXEC socket flags and no accept4;
// the flags are applied with separate fcntl calls after creation.

//go:build darwin || freebsd

package server

import "golang.org/x/sys/unix"

// newListenSocket creates a non-blocking close-on-exec IPv4 stream socket.
func newListenSocket() (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, err
	}
	unix.CloseOnExec(fd)
	return fd, nil
}

// acceptConn accepts one pending connection and applies the non-blocking
// and close-on-exec flags to it.
func acceptConn(listenFd int) (int, error) {
	nfd, _, err := unix.Accept(listenFd)
	if err != nil {
		return -1, err
	}
	if err := unix.SetNonblock(nfd, true); err != nil {
		unix.Close(nfd)
		return -1, err
	}
	unix.CloseOnExec(nfd)
	return nfd, nil
}

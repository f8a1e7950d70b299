// File: server/sock_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux

package server

import "golang.org/x/sys/unix"

// newListenSocket creates a non-blocking close-on-exec IPv4 stream socket.
func newListenSocket() (int, error) {
	return unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
}

// acceptConn accepts one pending connection with the non-blocking and
// close-on-exec flags applied atomically.
func acceptConn(listenFd int) (int, error) {
	nfd, _, err := unix.Accept4(listenFd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	return nfd, err
}

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7) backend. Registrations are keyed by descriptor alone;
// read/write interest is carried in the per-registration event mask.

//go:build linux

package reactor

import "golang.org/x/sys/unix"

// regKey identifies a binding: on Linux, just the descriptor.
type regKey struct {
	fd int
}

// keysFor maps a descriptor and interest set to binding keys. Both
// interests share the single descriptor key on Linux.
func keysFor(fd int, _ Interest) []regKey {
	return []regKey{{fd: fd}}
}

type backend struct {
	epfd int
	raw  []unix.EpollEvent
}

func newBackend() (*backend, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &backend{
		epfd: epfd,
		raw:  make([]unix.EpollEvent, maxEvents),
	}, nil
}

func interestMask(interest Interest) uint32 {
	var mask uint32
	if interest&InterestRead != 0 {
		mask |= unix.EPOLLIN
	}
	if interest&InterestWrite != 0 {
		mask |= unix.EPOLLOUT
	}
	return mask
}

// add inserts fd into the interest set; an existing registration is
// replaced.
func (b *backend) add(fd int, interest Interest) error {
	ev := unix.EpollEvent{Events: interestMask(interest), Fd: int32(fd)}
	err := unix.EpollCtl(b.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
	if err == unix.EEXIST {
		err = unix.EpollCtl(b.epfd, unix.EPOLL_CTL_MOD, fd, &ev)
	}
	return err
}

// del removes fd from the interest set; unknown or already-closed
// descriptors are a no-op.
func (b *backend) del(fd int) error {
	err := unix.EpollCtl(b.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	if err == unix.ENOENT || err == unix.EBADF {
		return nil
	}
	return err
}

// wait blocks for up to timeoutMs and decodes up to len(evs) readiness
// events into the portable representation plus their binding keys.
func (b *backend) wait(evs []Event, keys []regKey, timeoutMs int) (int, error) {
	n, err := unix.EpollWait(b.epfd, b.raw[:len(evs)], timeoutMs)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		raw := b.raw[i]
		fd := int(raw.Fd)
		evs[i] = Event{
			Fd: fd,
			// HUP and ERR surface as readable so the handler's read
			// observes the zero-byte EOF or the socket error.
			Readable: raw.Events&(unix.EPOLLIN|unix.EPOLLHUP|unix.EPOLLERR) != 0,
			Writable: raw.Events&unix.EPOLLOUT != 0,
			EOF:      raw.Events&(unix.EPOLLHUP|unix.EPOLLRDHUP) != 0,
		}
		keys[i] = regKey{fd: fd}
	}
	return n, nil
}

func (b *backend) close() error {
	return unix.Close(b.epfd)
}

// File: reactor/reactor_bsd.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// kqueue(2) backend for Darwin and FreeBSD. Registrations are keyed by
// (descriptor, filter): read and write interest on the same descriptor are
// two separate kernel registrations.

//go:build darwin || freebsd

package reactor

import "golang.org/x/sys/unix"

// regKey identifies a binding: on kqueue platforms, descriptor plus filter.
type regKey struct {
	fd     int
	filter int16
}

// keysFor maps a descriptor and interest set to binding keys, one per
// subscribed filter.
func keysFor(fd int, interest Interest) []regKey {
	keys := make([]regKey, 0, 2)
	if interest&InterestRead != 0 {
		keys = append(keys, regKey{fd: fd, filter: unix.EVFILT_READ})
	}
	if interest&InterestWrite != 0 {
		keys = append(keys, regKey{fd: fd, filter: unix.EVFILT_WRITE})
	}
	return keys
}

type backend struct {
	kq  int
	raw []unix.Kevent_t
}

func newBackend() (*backend, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, err
	}
	unix.CloseOnExec(kq)
	return &backend{
		kq:  kq,
		raw: make([]unix.Kevent_t, maxEvents),
	}, nil
}

// controlTimeout bounds each add/remove kernel call.
var controlTimeout = unix.NsecToTimespec(int64(waitTimeoutMs) * 1e6)

// change submits one EV_ADD/EV_DELETE for a single filter.
func (b *backend) change(fd int, filter, flags int) error {
	var kev unix.Kevent_t
	unix.SetKevent(&kev, fd, filter, flags)
	ts := controlTimeout
	_, err := unix.Kevent(b.kq, []unix.Kevent_t{kev}, nil, &ts)
	return err
}

// add registers fd for each requested filter. kqueue's EV_ADD already
// replaces an existing (fd, filter) registration.
func (b *backend) add(fd int, interest Interest) error {
	if interest&InterestRead != 0 {
		if err := b.change(fd, unix.EVFILT_READ, unix.EV_ADD); err != nil {
			return err
		}
	}
	if interest&InterestWrite != 0 {
		if err := b.change(fd, unix.EVFILT_WRITE, unix.EV_ADD); err != nil {
			return err
		}
	}
	return nil
}

// del removes both possible filters for fd; missing registrations are a
// no-op.
func (b *backend) del(fd int) error {
	if err := b.change(fd, unix.EVFILT_READ, unix.EV_DELETE); err != nil &&
		err != unix.ENOENT && err != unix.EBADF {
		return err
	}
	if err := b.change(fd, unix.EVFILT_WRITE, unix.EV_DELETE); err != nil &&
		err != unix.ENOENT && err != unix.EBADF {
		return err
	}
	return nil
}

// wait blocks for up to timeoutMs and decodes up to len(evs) readiness
// events. Data carries the kernel's readable byte count for read filters.
func (b *backend) wait(evs []Event, keys []regKey, timeoutMs int) (int, error) {
	ts := unix.NsecToTimespec(int64(timeoutMs) * 1e6)
	n, err := unix.Kevent(b.kq, nil, b.raw[:len(evs)], &ts)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		raw := b.raw[i]
		fd := int(raw.Ident)
		ev := Event{
			Fd:  fd,
			EOF: raw.Flags&unix.EV_EOF != 0,
		}
		switch raw.Filter {
		case unix.EVFILT_READ:
			ev.Readable = true
			ev.Available = raw.Data
		case unix.EVFILT_WRITE:
			ev.Writable = true
		}
		evs[i] = ev
		keys[i] = regKey{fd: fd, filter: raw.Filter}
	}
	return n, nil
}

func (b *backend) close() error {
	return unix.Close(b.kq)
}

// File: reactor/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package reactor converts OS-level readiness notifications into handler
// invocations. One backend exists per platform family: epoll on Linux,
// kqueue on Darwin and the BSDs. The portable surface is identical across
// backends; only the kernel keying differs (descriptor on Linux,
// descriptor+filter on kqueue).
//
// A Reactor owns a single dispatch goroutine started by Spawn and stopped
// cooperatively by Join. Handler callbacks run on that goroutine and must
// not block it; registration changes made from inside a callback go through
// the Handle passed to the callback, which defers them until the current
// dispatch pass has released the handler table's shared lock.
package reactor

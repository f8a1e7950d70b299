// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral reactor core: handler table, dispatch loop, lifecycle.
// Kernel specifics live in the per-platform backend files.

package reactor

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"golang.org/x/sys/unix"
)

const (
	// maxEvents bounds one kernel wait batch.
	maxEvents = 1024
	// waitTimeoutMs keeps the wait short so shutdown is observed promptly.
	waitTimeoutMs = 2
)

// ErrAlreadySpawned is returned by Spawn when the dispatch goroutine is
// already running.
var ErrAlreadySpawned = errors.New("reactor already spawned")

// Interest selects the readiness conditions a registration subscribes to.
type Interest uint8

const (
	InterestRead Interest = 1 << iota
	InterestWrite
)

// Event is one readiness notification delivered to a callback.
type Event struct {
	Fd       int
	Readable bool
	Writable bool
	// EOF is set when the kernel reports the peer has closed (kqueue
	// EV_EOF, epoll HUP). On Linux a zero-byte read is the authoritative
	// EOF signal.
	EOF bool
	// Available is the kernel-reported readable byte count where the
	// backend provides one (kqueue); zero otherwise.
	Available int64
}

// EventCallback handles one readiness event. It runs on the dispatch
// goroutine under the handler table's shared lock and must not block.
// Registration changes from inside a callback must go through h.
type EventCallback func(h *Handle, ev Event, data any)

type binding struct {
	cb   EventCallback
	data any
}

// pendingOp is a registration change deferred by a Handle until the
// dispatch pass completes.
type pendingOp struct {
	unregister bool
	fd         int
	interest   Interest
	data       any
	cb         EventCallback
}

// Reactor dispatches kernel readiness events to registered callbacks from
// one dedicated goroutine.
type Reactor struct {
	be *backend

	mu       sync.RWMutex // writers: Register/Unregister; reader: dispatch
	handlers map[regKey]*binding

	pendMu  sync.Mutex
	pending *queue.Queue // of pendingOp

	spawnMu  sync.Mutex
	spawned  bool
	done     chan struct{}
	shutdown atomic.Bool

	logger *slog.Logger
}

// New constructs a reactor over the platform backend. A nil logger means
// slog.Default().
func New(logger *slog.Logger) (*Reactor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	be, err := newBackend()
	if err != nil {
		return nil, err
	}
	return &Reactor{
		be:       be,
		handlers: make(map[regKey]*binding),
		pending:  queue.New(),
		logger:   logger,
	}, nil
}

// Register adds fd to the kernel interest set and binds cb (with its user
// data) to the resulting key(s). Re-registering a live key replaces the
// prior binding. Must not be called from inside a callback; use the
// callback's Handle instead.
func (r *Reactor) Register(fd int, interest Interest, data any, cb EventCallback) error {
	if err := r.be.add(fd, interest); err != nil {
		return err
	}
	b := &binding{cb: cb, data: data}
	r.mu.Lock()
	for _, k := range keysFor(fd, interest) {
		r.handlers[k] = b
	}
	r.mu.Unlock()
	return nil
}

// Unregister removes fd from the kernel set and drops its bindings.
// Idempotent on a descriptor that was never registered.
func (r *Reactor) Unregister(fd int) error {
	r.mu.Lock()
	for _, k := range keysFor(fd, InterestRead|InterestWrite) {
		delete(r.handlers, k)
	}
	r.mu.Unlock()
	return r.be.del(fd)
}

// Spawn launches the dispatch goroutine. Calling Spawn again without an
// intervening Join returns ErrAlreadySpawned.
func (r *Reactor) Spawn() error {
	r.spawnMu.Lock()
	defer r.spawnMu.Unlock()
	if r.spawned {
		return ErrAlreadySpawned
	}
	r.spawned = true
	r.done = make(chan struct{})
	go r.loop()
	return nil
}

// Join requests shutdown, waits for the dispatch goroutine to exit, and
// resets the lifecycle flags. Join without a prior Spawn is a no-op.
func (r *Reactor) Join() {
	r.spawnMu.Lock()
	defer r.spawnMu.Unlock()
	if !r.spawned {
		return
	}
	r.shutdown.Store(true)
	<-r.done
	r.spawned = false
	r.shutdown.Store(false)
}

// Close joins the dispatch goroutine and releases the kernel facility.
func (r *Reactor) Close() error {
	r.Join()
	return r.be.close()
}

// loop is the dispatch thread: wait, look up, invoke, apply deferred ops.
// The shutdown flag is checked between kernel waits, so shutdown latency is
// bounded by waitTimeoutMs.
func (r *Reactor) loop() {
	defer close(r.done)
	evs := make([]Event, maxEvents)
	keys := make([]regKey, maxEvents)
	for !r.shutdown.Load() {
		n, err := r.be.wait(evs, keys, waitTimeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			// Anything else here is a programming bug, not a runtime
			// condition the caller can handle.
			r.logger.Error("reactor: kernel wait failed", "error", err)
			os.Exit(1)
		}
		if n > 0 {
			h := &Handle{r: r}
			r.mu.RLock()
			for i := 0; i < n; i++ {
				if b, ok := r.handlers[keys[i]]; ok {
					b.cb(h, evs[i], b.data)
				}
			}
			r.mu.RUnlock()
		}
		r.applyPending()
	}
}

// applyPending drains the deferred-op queue outside the dispatch lock.
func (r *Reactor) applyPending() {
	for {
		r.pendMu.Lock()
		if r.pending.Length() == 0 {
			r.pendMu.Unlock()
			return
		}
		op := r.pending.Remove().(pendingOp)
		r.pendMu.Unlock()

		if op.unregister {
			if err := r.Unregister(op.fd); err != nil {
				r.logger.Warn("reactor: deferred unregister failed", "fd", op.fd, "error", err)
			}
		} else {
			if err := r.Register(op.fd, op.interest, op.data, op.cb); err != nil {
				r.logger.Warn("reactor: deferred register failed", "fd", op.fd, "error", err)
			}
		}
	}
}

func (r *Reactor) enqueue(op pendingOp) {
	r.pendMu.Lock()
	r.pending.Add(op)
	r.pendMu.Unlock()
}

// Handle is the re-entrant registration surface passed to callbacks. Its
// operations are queued and applied by the dispatch loop after the current
// pass, since a callback already holds the handler table's shared lock.
type Handle struct {
	r *Reactor
}

// Register queues a registration to be applied after the current dispatch
// pass.
func (h *Handle) Register(fd int, interest Interest, data any, cb EventCallback) {
	h.r.enqueue(pendingOp{fd: fd, interest: interest, data: data, cb: cb})
}

// Unregister queues removal of fd's bindings.
func (h *Handle) Unregister(fd int) {
	h.r.enqueue(pendingOp{unregister: true, fd: fd})
}

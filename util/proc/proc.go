// Package proc generalizes the loop of a process: a single goroutine owns a
// resource and applies requests to it one at a time.
package proc

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"
	"golang.org/x/net/context"
)

var tracked struct {
	sync.Mutex
	procs []*Proc
}

// HandleDebug lists the running processes.
func HandleDebug(w http.ResponseWriter, r *http.Request) {
	tracked.Lock()
	defer tracked.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	for _, proc := range tracked.procs {
		fmt.Fprintf(w, "%p: %v\n", proc, proc)
	}
}

type HandleFn func(context.Context) error

// Process is the interface a resource owner must implement.
type Process interface {
	ProcessName() string
	Handle(context.Context, HandleFn) error
}

type request struct {
	ctx  context.Context
	fn   HandleFn
	errc chan error
}

type Proc struct {
	proc Process
	ch   chan request

	// mu guards stopped; senders hold it for reading so Stop cannot close
	// ch under them.
	mu      sync.RWMutex
	stopped bool
	handled uint64
}

func Create(proc Process) *Proc {
	tracked.Lock()
	defer tracked.Unlock()

	p := &Proc{
		proc: proc,
		ch:   make(chan request),
	}

	tracked.procs = append(tracked.procs, p)

	go p.run(proc)

	return p
}

func (p *Proc) String() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return fmt.Sprintf("%s (handled %d, stopped %t)",
		p.proc.ProcessName(), atomic.LoadUint64(&p.handled), p.stopped,
	)
}

// ErrStopped is returned for requests sent after Stop.
var ErrStopped = fmt.Errorf("proc: stopped")

// Wait sends a request to the process and returns its result. ctx only
// bounds the wait for the loop to accept the request: once accepted, the
// handler runs to completion and Wait reports what it returned, so a caller
// never sees a cancellation error for work that was committed.
func (p *Proc) Wait(ctx context.Context, req HandleFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// buffered so the loop never blocks on the reply
	errc := make(chan error, 1)

	p.mu.RLock()
	if p.stopped {
		p.mu.RUnlock()
		return ErrStopped
	}

	select {
	case p.ch <- request{ctx, req, errc}:
		p.mu.RUnlock()
	case <-ctx.Done():
		p.mu.RUnlock()
		return ctx.Err()
	}

	return <-errc
}

// Stop ends the loop once pending requests are done. The process is no
// longer listed by HandleDebug.
func (p *Proc) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.ch)
	p.mu.Unlock()

	tracked.Lock()
	defer tracked.Unlock()

	for i, proc := range tracked.procs {
		if proc == p {
			tracked.procs = append(tracked.procs[:i], tracked.procs[i+1:]...)
			break
		}
	}
}

// run loops and calls the process handler for each message.
func (p *Proc) run(proc Process) {
	for req := range p.ch {
		var err error
		if err = proc.Handle(req.ctx, req.fn); err != nil {
			glog.V(1).Infof("%s: %v", proc.ProcessName(), err)
		}

		atomic.AddUint64(&p.handled, 1)

		req.errc <- err
	}
}

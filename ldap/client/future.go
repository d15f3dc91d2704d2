package client

import (
	"context"
	"sync"

	"github.com/hdt3213/goldap/interface/ldap"
)

// Future is the eventual result of a submitted operation. It resolves exactly
// once, with either the server's response or an error, when the response is
// dispatched or the connection fails.
type Future struct {
	once sync.Once
	done chan struct{}
	resp ldap.Response
	err  error
}

func makeFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(resp ldap.Response, err error) {
	f.once.Do(func() {
		f.resp = resp
		f.err = err
		close(f.done)
	})
}

// Done returns a channel closed when the future has resolved
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future resolves or ctx is cancelled
func (f *Future) Wait(ctx context.Context) (ldap.Response, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

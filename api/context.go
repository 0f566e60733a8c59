package api

import (
	"net/http"

	"golang.org/x/net/context"
)

// CtxHandler is an http.Handler that also receives the context carrying
// the server.
type CtxHandler interface {
	CtxServeHTTP(context.Context, http.ResponseWriter, *http.Request)
}

type CtxHandlerFunc func(context.Context, http.ResponseWriter, *http.Request)

func (h CtxHandlerFunc) CtxServeHTTP(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	h(ctx, rw, req)
}

type CtxWrapper struct {
	ctx context.Context
	h   CtxHandler
}

// ServeHTTP hands the request to the wrapped handler. The request's own
// context is cancelled when the client goes away; the values come from the
// wrapper's context.
func (h CtxWrapper) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	h.h.CtxServeHTTP(merge{req.Context(), h.ctx}, rw, req)
}

// merge takes its deadline and cancellation from the request and its values
// from base, falling back to the request's values.
type merge struct {
	context.Context
	base context.Context
}

func (m merge) Value(key interface{}) interface{} {
	if v := m.base.Value(key); v != nil {
		return v
	}

	return m.Context.Value(key)
}

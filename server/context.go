package server

import "golang.org/x/net/context"

type key int

const serverKey key = 0

func Wrap(ctx context.Context, srv *Server) context.Context {
	return context.WithValue(ctx, serverKey, srv)
}

func Unwrap(ctx context.Context) (*Server, bool) {
	srv, ok := ctx.Value(serverKey).(*Server)
	return srv, ok
}

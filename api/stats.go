package api

import (
	"net/http"

	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/api/reply"
	"github.com/allfs/quadstorvtl/build"
	"github.com/allfs/quadstorvtl/server"
	"github.com/allfs/quadstorvtl/util/proc"
)

type stats struct {
	Submissions server.Snapshot `json:"submissions"`
	Pending     map[string]int  `json:"pending"`
}

func Stats(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	pending, err := srv.Pending(ctx)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.OK(rw, stats{
		Submissions: srv.Stats(),
		Pending:     pending,
	})
}

func Version(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	reply.OK(rw, build.GetInfo())
}

func Procs(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	proc.HandleDebug(rw, req)
}

package vcart

import (
	"net/http"

	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/api/reply"
	"github.com/allfs/quadstorvtl/form"
	"github.com/allfs/quadstorvtl/server"
	"github.com/allfs/quadstorvtl/spool"
)

func submit(ctx context.Context, rw http.ResponseWriter, req *http.Request) (*form.CartridgeRequest, bool) {
	srv, _ := server.Unwrap(ctx)

	v, err := reply.Values(req)
	if err != nil {
		reply.Error(rw, req, err)
		return nil, false
	}

	f := &form.CartridgeForm{MaxCartridges: srv.MaxCartridges()}

	creq, err := f.OnSubmit(v)
	if err != nil {
		srv.Reject(spool.KindCartridge)
		reply.Error(rw, req, err)
		return nil, false
	}

	return creq, true
}

type preview struct {
	Request *form.CartridgeRequest `json:"request"`
	Labels  []string               `json:"labels"`
}

// Check runs the cartridge form's submit gate and previews the labels the
// batch would get.
func Check(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	creq, ok := submit(ctx, rw, req)
	if !ok {
		return
	}

	lib, err := srv.Library(ctx, creq.Library)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	media, err := server.CartridgeMedia(lib, creq.Media)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	labels, err := form.ExpandLabels(creq.Label, creq.Count, media, creq.WORM)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	creq.Media = media

	reply.OK(rw, preview{Request: creq, Labels: labels})
}

func Add(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	creq, ok := submit(ctx, rw, req)
	if !ok {
		return
	}

	batch, err := srv.AddCartridges(ctx, creq)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.JSON(rw, http.StatusCreated, batch)
}

package vdrive

import (
	"net/http"

	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/api/reply"
	"github.com/allfs/quadstorvtl/form"
	"github.com/allfs/quadstorvtl/server"
	"github.com/allfs/quadstorvtl/spool"
)

type page struct {
	Drives []form.Option     `json:"drivetype"`
	Fields []form.FieldState `json:"fields"`
}

func Form(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	f := form.NewDriveForm()

	reply.OK(rw, page{
		Drives: f.Initialize(),
		Fields: f.OnAutofillChanged(false),
	})
}

func submit(ctx context.Context, rw http.ResponseWriter, req *http.Request) (*form.DriveRequest, bool) {
	srv, _ := server.Unwrap(ctx)

	v, err := reply.Values(req)
	if err != nil {
		reply.Error(rw, req, err)
		return nil, false
	}

	dreq, err := form.NewDriveForm().OnSubmit(v)
	if err != nil {
		srv.Reject(spool.KindDrive)
		reply.Error(rw, req, err)
		return nil, false
	}

	return dreq, true
}

// Check runs the drive form's submit gate without adding the drive.
func Check(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	if dreq, ok := submit(ctx, rw, req); ok {
		reply.OK(rw, dreq)
	}
}

func Add(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	dreq, ok := submit(ctx, rw, req)
	if !ok {
		return
	}

	rec, err := srv.AddDrive(ctx, dreq)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.JSON(rw, http.StatusCreated, rec)
}

func List(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	drvs, err := srv.Drives(ctx)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.OK(rw, drvs)
}

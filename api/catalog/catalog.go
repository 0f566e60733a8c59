package catalog

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/api/reply"
	"github.com/allfs/quadstorvtl/catalog"
	"github.com/allfs/quadstorvtl/form"
)

func Export(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	reply.OK(rw, catalog.Export())
}

func Libraries(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	reply.OK(rw, form.Populate(catalog.Libraries()))
}

func Drives(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	reply.OK(rw, form.Populate(catalog.Drives()))
}

func Media(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	reply.OK(rw, form.Populate(catalog.MediaTypes()))
}

// CompatibleDrives answers the drive dropdown for the selected library
// model. An unknown model yields an empty list.
func CompatibleDrives(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	code, err := strconv.Atoi(vars["code"])
	if err != nil {
		reply.BadRequest(rw, "library code must be a number")
		return
	}

	reply.OK(rw, form.PopulateCompatibleDrives(code))
}

// Autofill answers the state of the inputs governed by the auto-fill
// checkbox.
func Autofill(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	var checked bool
	switch req.URL.Query().Get("checked") {
	case "1", "true", "on", "yes":
		checked = true
	}

	reply.OK(rw, form.Autofill(checked))
}

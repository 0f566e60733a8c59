package vtl

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/api/reply"
	"github.com/allfs/quadstorvtl/form"
	"github.com/allfs/quadstorvtl/server"
	"github.com/allfs/quadstorvtl/spool"
	"github.com/allfs/quadstorvtl/vtlconf"
)

// DraftPage is the state of the add-drives page for a library draft.
type DraftPage struct {
	Draft     *form.Draft    `json:"draft"`
	Fields    url.Values     `json:"fields"`
	Drives    []form.Option  `json:"driveselect"`
	Counts    []form.Option  `json:"ndrives"`
	Summary   []vtlconf.Line `json:"summary"`
	Remaining int            `json:"remaining"`
}

func draftPage(srv *server.Server, draft *form.Draft) (*DraftPage, error) {
	conf, err := vtlconf.BuildLimit(draft, srv.MaxDrives())
	if err != nil {
		return nil, err
	}

	f := &form.DriveSetForm{MaxDrives: srv.MaxDrives()}

	return &DraftPage{
		Draft:     draft,
		Fields:    draft.Fields(),
		Drives:    f.Initialize(draft.Library),
		Counts:    f.Counts(draft),
		Summary:   conf.Summary(),
		Remaining: conf.Remaining(),
	}, nil
}

func Form(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	mode, err := form.ParseMode(req.URL.Query().Get("mode"))
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	f := &form.LibraryForm{MaxDrives: srv.MaxDrives()}

	reply.OK(rw, f.OnModeChanged(mode))
}

// Check runs the library-creation submit gate and answers the add-drives
// page for the accepted draft.
func Check(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	v, err := reply.Values(req)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	f := &form.LibraryForm{MaxDrives: srv.MaxDrives()}

	draft, err := f.OnSubmit(v)
	if err != nil {
		srv.Reject(spool.KindVTL)
		reply.Error(rw, req, err)
		return
	}

	page, err := draftPage(srv, draft)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.OK(rw, page)
}

// AddDrives folds one more drive type into the draft.
func AddDrives(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	v, err := reply.Values(req)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	f := &form.DriveSetForm{MaxDrives: srv.MaxDrives()}

	draft, err := f.OnSubmit(v)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	page, err := draftPage(srv, draft)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.OK(rw, page)
}

// Summary answers the drive summary of the draft carried in the request.
func Summary(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	v, err := reply.Values(req)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	draft, err := form.ParseDraft(v)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	page, err := draftPage(srv, draft)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.OK(rw, page)
}

type added struct {
	Name     string `json:"name"`
	Seq      uint64 `json:"seq"`
	ID       string `json:"id"`
	Document string `json:"document"`
}

// Add hands the finished draft to the server.
func Add(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	v, err := reply.Values(req)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	draft, err := form.ParseDraft(v)
	if err != nil {
		srv.Reject(spool.KindVTL)
		reply.Error(rw, req, err)
		return
	}

	conf, err := vtlconf.BuildLimit(draft, srv.MaxDrives())
	if err != nil {
		srv.Reject(spool.KindVTL)
		reply.Error(rw, req, err)
		return
	}

	rec, err := srv.AddVTL(ctx, conf)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	var doc strings.Builder
	if err := conf.Encode(&doc); err != nil {
		glog.Error(err)
	}

	reply.JSON(rw, http.StatusCreated, added{
		Name:     conf.Name,
		Seq:      rec.Seq,
		ID:       rec.ID.String(),
		Document: doc.String(),
	})
}

func List(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	libs, err := srv.Libraries(ctx)
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.OK(rw, libs)
}

func Get(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	lib, err := srv.Library(ctx, mux.Vars(req)["name"])
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.OK(rw, lib)
}

// Media answers the cartridge type dropdown for a library.
func Media(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	lib, err := srv.Library(ctx, mux.Vars(req)["name"])
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.OK(rw, form.NewCartridgeForm().Initialize(lib.DriveTypes()))
}

func Cartridges(ctx context.Context, rw http.ResponseWriter, req *http.Request) {
	srv, _ := server.Unwrap(ctx)

	carts, err := srv.Cartridges(ctx, mux.Vars(req)["name"])
	if err != nil {
		reply.Error(rw, req, err)
		return
	}

	reply.OK(rw, carts)
}

package api

import (
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/api/catalog"
	"github.com/allfs/quadstorvtl/api/vcart"
	"github.com/allfs/quadstorvtl/api/vdrive"
	"github.com/allfs/quadstorvtl/api/vtl"
	"github.com/allfs/quadstorvtl/server"
)

type Route struct {
	name    string
	method  string
	pattern string
	handler CtxHandlerFunc
}

var routes = []Route{
	{"catalog", "GET", "/catalog", catalog.Export},
	{"catalog/libraries", "GET", "/catalog/libraries", catalog.Libraries},
	{"catalog/drives", "GET", "/catalog/drives", catalog.Drives},
	{"catalog/media", "GET", "/catalog/media", catalog.Media},
	{"catalog/compatible", "GET", "/catalog/libraries/{code:-?[0-9]+}/drives", catalog.CompatibleDrives},
	{"form/autofill", "GET", "/form/autofill", catalog.Autofill},

	{"vtl/form", "GET", "/vtl/form", vtl.Form},
	{"vtl/check", "POST", "/vtl/check", vtl.Check},
	{"vtl/drives", "POST", "/vtl/drives", vtl.AddDrives},
	{"vtl/summary", "POST", "/vtl/summary", vtl.Summary},
	{"vtl/add", "POST", "/vtl", vtl.Add},
	{"vtl/list", "GET", "/vtl", vtl.List},
	{"vtl/get", "GET", "/vtl/{name}", vtl.Get},
	{"vtl/media", "GET", "/vtl/{name}/media", vtl.Media},
	{"vtl/cartridges", "GET", "/vtl/{name}/cartridges", vtl.Cartridges},

	{"vdrive/form", "GET", "/vdrive/form", vdrive.Form},
	{"vdrive/check", "POST", "/vdrive/check", vdrive.Check},
	{"vdrive/add", "POST", "/vdrive", vdrive.Add},
	{"vdrive/list", "GET", "/vdrive", vdrive.List},

	{"vcartridge/check", "POST", "/vcartridge/check", vcart.Check},
	{"vcartridge/add", "POST", "/vcartridge", vcart.Add},

	{"stats", "GET", "/stats", Stats},
	{"version", "GET", "/version", Version},
	{"debug/procs", "GET", "/debug/procs", Procs},
}

// build routes from the table and wrap them with net/context
func NewRouter(srv *server.Server) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	for _, route := range routes {
		var handler http.Handler

		handler = &CtxWrapper{
			ctx: server.Wrap(context.Background(), srv),
			h:   route.handler,
		}

		handler = logger(handler, route.name)

		router.
			Methods(route.method).
			Path(route.pattern).
			Name(route.name).
			Handler(handler)
	}

	return router
}

// Start serves the API on the configured address until ListenAndServe
// fails or the returned server is shut down.
func Start(srv *server.Server) *http.Server {
	hs := &http.Server{
		Addr:    srv.Config().Listen,
		Handler: NewRouter(srv),
	}

	go func() {
		glog.Infof("starting http server on %s...", hs.Addr)
		if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			glog.Fatal(err)
		}
	}()

	return hs
}

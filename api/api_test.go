package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allfs/quadstorvtl/api/reply"
	"github.com/allfs/quadstorvtl/config"
	"github.com/allfs/quadstorvtl/form"
	"github.com/allfs/quadstorvtl/server"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()

	dir := t.TempDir()

	cfg := config.Default()
	cfg.Spool.Path = filepath.Join(dir, "spool.db")
	cfg.Inventory.Path = filepath.Join(dir, "inventory.db")

	srv, err := server.New(cfg)
	require.NoError(t, err)
	t.Cleanup(srv.Shutdown)

	return NewRouter(srv)
}

func do(t *testing.T, router http.Handler, method, target string, form url.Values, out interface{}) int {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}

	return rec.Code
}

func values(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}

	return v
}

func TestCatalogRoutes(t *testing.T) {
	router := newRouter(t)

	var opts []form.Option
	require.Equal(t, 200, do(t, router, "GET", "/catalog/libraries", nil, &opts))
	assert.Len(t, opts, 12)
	assert.True(t, opts[0].Selected)

	require.Equal(t, 200, do(t, router, "GET", "/catalog/libraries/1/drives", nil, &opts))
	require.Len(t, opts, 3)
	assert.Equal(t, "Quantum SDLT 320", opts[0].Label)

	for _, code := range []string{"0", "-1", "13"} {
		opts = nil
		require.Equal(t, 200, do(t, router, "GET", "/catalog/libraries/"+code+"/drives", nil, &opts))
		assert.NotNil(t, opts, code)
		assert.Empty(t, opts, code)
	}

	require.Equal(t, 200, do(t, router, "GET", "/catalog/media", nil, &opts))
	assert.Len(t, opts, 13)

	var states []form.FieldState
	require.Equal(t, 200, do(t, router, "GET", "/form/autofill?checked=on", nil, &states))
	assert.False(t, states[0].Disabled)
}

func TestLibraryFormRoutes(t *testing.T) {
	router := newRouter(t)

	var page form.LibraryPage
	require.Equal(t, 200, do(t, router, "GET", "/vtl/form?mode=manual", nil, &page))
	assert.Equal(t, "manual", page.Mode)
	assert.Empty(t, page.Drives)
	assert.Len(t, page.Fields, 2)

	var failure reply.Failure
	require.Equal(t, 400, do(t, router, "GET", "/vtl/form?mode=auto", nil, &failure))
	assert.Equal(t, "vtype", failure.Field)
}

func TestAddLibraryFlow(t *testing.T) {
	router := newRouter(t)

	var failure reply.Failure
	code := do(t, router, "POST", "/vtl/check",
		values("lname", "my vtl", "vselect", "1", "drivetype0", "16", "ndrives", "2"), &failure)
	require.Equal(t, 400, code)
	assert.Equal(t, "lname", failure.Field)
	assert.Equal(t, "VTL Name can only contain alphabets or numbers", failure.Message)

	var page struct {
		Fields    url.Values    `json:"fields"`
		Drives    []form.Option `json:"driveselect"`
		Counts    []form.Option `json:"ndrives"`
		Remaining int           `json:"remaining"`
	}
	code = do(t, router, "POST", "/vtl/check",
		values("lname", "vtl1", "vselect", "1", "drivetype0", "16", "ndrives", "2"), &page)
	require.Equal(t, 200, code)
	assert.Equal(t, 13, page.Remaining)
	assert.Len(t, page.Counts, 13)
	assert.Len(t, page.Drives, 3)

	// accumulate two more of the same type: counts add up numerically
	fields := page.Fields
	fields.Set("driveselect", "16")
	fields.Set("ndrives", "2")

	code = do(t, router, "POST", "/vtl/drives", fields, &page)
	require.Equal(t, 200, code)
	assert.Equal(t, "4", page.Fields.Get("ndrivetype0"))
	assert.Equal(t, 11, page.Remaining)

	var added struct {
		Name     string `json:"name"`
		Seq      uint64 `json:"seq"`
		Document string `json:"document"`
	}
	code = do(t, router, "POST", "/vtl", page.Fields, &added)
	require.Equal(t, 201, code)
	assert.Equal(t, "vtl1", added.Name)
	assert.Equal(t, uint64(1), added.Seq)
	assert.Contains(t, added.Document, "name: drive3\n")

	code = do(t, router, "POST", "/vtl", page.Fields, &failure)
	require.Equal(t, 409, code)
	assert.Contains(t, failure.Message, "vtl1")

	var media []form.Option
	require.Equal(t, 200, do(t, router, "GET", "/vtl/vtl1/media", nil, &media))
	require.Len(t, media, 1)
	assert.Equal(t, "LTO 1 100GB", media[0].Label)

	require.Equal(t, 404, do(t, router, "GET", "/vtl/nope/media", nil, &failure))
}

func TestDriveRoutes(t *testing.T) {
	router := newRouter(t)

	var failure reply.Failure
	require.Equal(t, 400, do(t, router, "POST", "/vdrive/check", values("name", "d-1", "drivetype", "1"), &failure))
	assert.Equal(t, "name", failure.Field)

	require.Equal(t, 200, do(t, router, "POST", "/vdrive/check", values("name", "d1", "drivetype", "1"), nil))
	require.Equal(t, 201, do(t, router, "POST", "/vdrive", values("name", "d1", "drivetype", "1"), nil))
	require.Equal(t, 409, do(t, router, "POST", "/vdrive", values("name", "d1", "drivetype", "2"), nil))

	var drvs []map[string]interface{}
	require.Equal(t, 200, do(t, router, "GET", "/vdrive", nil, &drvs))
	assert.Len(t, drvs, 1)
}

func TestCartridgeRoutes(t *testing.T) {
	router := newRouter(t)

	require.Equal(t, 201, do(t, router, "POST", "/vtl",
		values("lname", "vtl1", "vselect", "1", "slots", "20",
			"ndrivetypes", "1", "drivetype0", "16", "ndrivetype0", "1"), nil))

	var failure reply.Failure
	require.Equal(t, 400, do(t, router, "POST", "/vcartridge/check",
		values("barcode", "ABC000", "vtlname", "vtl1", "nvolumes", "513"), &failure))
	assert.Equal(t, "nvolumes", failure.Field)

	var preview struct {
		Labels []string `json:"labels"`
	}
	require.Equal(t, 200, do(t, router, "POST", "/vcartridge/check",
		values("barcode", "ABC000", "vtlname", "vtl1", "nvolumes", "2"), &preview))
	assert.Equal(t, []string{"ABC000L1", "ABC001L1"}, preview.Labels)

	require.Equal(t, 201, do(t, router, "POST", "/vcartridge",
		values("barcode", "ABC000", "vtlname", "vtl1", "nvolumes", "2"), nil))
	require.Equal(t, 409, do(t, router, "POST", "/vcartridge",
		values("barcode", "ABC001", "vtlname", "vtl1", "nvolumes", "2"), nil))

	var carts []map[string]interface{}
	require.Equal(t, 200, do(t, router, "GET", "/vtl/vtl1/cartridges", nil, &carts))
	assert.Len(t, carts, 2)

	var st stats
	require.Equal(t, 200, do(t, router, "GET", "/stats", nil, &st))
	assert.Equal(t, uint64(1), st.Submissions["vcartridge"].Accepted)
	assert.Equal(t, uint64(2), st.Submissions["vcartridge"].Rejected)
	assert.Equal(t, 1, st.Pending["vcartridge"])
	assert.Equal(t, 1, st.Pending["vtl"])
}

func TestVersionAndProcs(t *testing.T) {
	router := newRouter(t)

	var info map[string]interface{}
	require.Equal(t, 200, do(t, router, "GET", "/version", nil, &info))
	assert.EqualValues(t, 3, info["catalog"])

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/debug/procs", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "inventory")
	assert.Contains(t, rec.Body.String(), "spool")
}

// Package reply writes JSON responses for the API handlers.
package reply

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/ansel1/merry"
	"github.com/golang/glog"

	"github.com/allfs/quadstorvtl/form"
)

// Failure is the body of every error response. Field is set for validation
// failures only.
type Failure struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func JSON(rw http.ResponseWriter, status int, v interface{}) {
	js, err := json.Marshal(v)
	if err != nil {
		glog.Error(err)
		http.Error(rw, "encoding response failed", http.StatusInternalServerError)

		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write(js)
}

func OK(rw http.ResponseWriter, v interface{}) {
	JSON(rw, http.StatusOK, v)
}

// Error writes err with the status it carries. Validation failures name the
// offending field; internal failures are logged and not shown to the caller.
func Error(rw http.ResponseWriter, req *http.Request, err error) {
	status := merry.HTTPCode(err)

	if status >= http.StatusInternalServerError {
		glog.Errorf("%s %s: %v", req.Method, req.URL.Path, err)
		JSON(rw, status, Failure{Message: "internal server error"})

		return
	}

	if form.IsValidation(err) {
		glog.V(1).Infof("%s %s: %v", req.Method, req.URL.Path, err)
		JSON(rw, status, Failure{Field: form.Field(err), Message: form.Message(err)})

		return
	}

	msg := merry.UserMessage(err)
	if msg == "" {
		msg = merry.Message(err)
	}

	JSON(rw, status, Failure{Message: msg})
}

// BadRequest reports a request the handler could not make sense of.
func BadRequest(rw http.ResponseWriter, msg string) {
	JSON(rw, http.StatusBadRequest, Failure{Message: msg})
}

// Values returns the query and urlencoded body parameters of req.
func Values(req *http.Request) (url.Values, error) {
	if err := req.ParseForm(); err != nil {
		return nil, merry.Wrap(err).WithHTTPCode(http.StatusBadRequest).WithUserMessage("malformed form body")
	}

	return req.Form, nil
}

package xhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"oss.terrastruct.com/cmdlog"
)

// Error represents an HTTP error.
// It's exported only for comparison in tests.
type Error struct {
	Code int
	Resp interface{}
	Err  error
}

var _ interface {
	Is(error) bool
	Unwrap() error
} = Error{}

// Errorf creates a 4xx or 5xx error answered with resp. A nil resp is the
// status text of code.
//
// When returned from an xhttp.HandlerFunc, it will be correctly logged
// and written to the connection. See xhttp.HandlerFuncAdapter
func Errorf(code int, resp interface{}, msg string, v ...interface{}) error {
	if resp == nil {
		resp = http.StatusText(code)
	}
	return Error{code, resp, fmt.Errorf(msg, v...)}
}

func (e Error) Unwrap() error {
	return e.Err
}

func (e Error) Is(err error) bool {
	e2, ok := err.(Error)
	if !ok {
		return false
	}
	return e.Code == e2.Code && e.Resp == e2.Resp && errors.Is(e.Err, e2.Err)
}

func (e Error) Error() string {
	return fmt.Sprintf("http error with code %v and resp %#v: %v", e.Code, e.Resp, e.Err)
}

// HandlerFunc is like http.HandlerFunc but returns an error.
// See Errorf.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

type HandlerFuncAdapter struct {
	Log  *cmdlog.Logger
	Func HandlerFunc
}

// ServeHTTP adapts xhttp.HandlerFunc into http.Handler for usage with standard
// HTTP routers like chi.
//
// Errors created with xhttp.Errorf are written as JSON with their resp, 4xx
// logged as warns and 5xx as errors. Any other error is a 500. A request
// abandoned by its client gets no response.
func (a HandlerFuncAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := a.Func(w, r)
	if err != nil {
		handleError(a.Log, w, r, err)
	}
}

func handleError(clog *cmdlog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		clog.Debug.Printf("client went away: %v", err)
		return
	}

	var herr Error
	if !errors.As(err, &herr) {
		herr = Error{http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), err}
	}

	logger := clog.Error
	if herr.Code < 500 {
		logger = clog.Warn
	}
	logger.Printf("error handling http request: %v", err)

	ww, ok := w.(writtenResponseWriter)
	if ok && ww.Written() {
		// The response was partially written before the error.
		return
	}

	JSON(clog, w, herr.Code, map[string]interface{}{
		"error": herr.Resp,
	})
}

type writtenResponseWriter interface {
	Written() bool
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
// Decoding failures are 400s.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err != nil {
		return Errorf(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), "failed to decode request body: %w", err)
	}
	return nil
}

func JSON(clog *cmdlog.Logger, w http.ResponseWriter, code int, v interface{}) {
	if v == nil {
		v = map[string]interface{}{
			"status": http.StatusText(code),
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		clog.Error.Printf("json marshal error: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

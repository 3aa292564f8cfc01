package xhttp

import (
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"golang.org/x/text/message"

	"oss.terrastruct.com/cmdlog"
)

// RequestIDHeader carries the id of a request in both directions.
const RequestIDHeader = "X-Request-Id"

type responseWriter struct {
	rw http.ResponseWriter

	written bool
	status  int
	length  int
}

var _ writtenResponseWriter = &responseWriter{}

func (rw *responseWriter) Header() http.Header {
	return rw.rw.Header()
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.written = true
		rw.status = statusCode
	}
	rw.rw.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(p []byte) (int, error) {
	if !rw.written && len(p) > 0 {
		rw.written = true
		if rw.status == 0 {
			rw.status = http.StatusOK
		}
	}
	rw.length += len(p)
	return rw.rw.Write(p)
}

func (rw *responseWriter) Written() bool {
	return rw.written
}

// Log logs every request with its status, response size and duration.
// Panics in next are recovered and answered with a 500.
func Log(clog *cmdlog.Logger, next http.Handler) http.Handler {
	englishPrinter := message.NewPrinter(message.MatchLanguage("en"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{
			rw: w,
		}

		defer func() {
			rec := recover()
			if rec != nil {
				clog.Error.Printf("caught panic: %#v\n%s", rec, debug.Stack())
				if !rw.Written() {
					JSON(clog, rw, http.StatusInternalServerError, map[string]interface{}{
						"error": http.StatusText(http.StatusInternalServerError),
					})
				}
			}
		}()

		start := time.Now()
		next.ServeHTTP(rw, r)
		dur := time.Since(start)

		reqID := rw.Header().Get(RequestIDHeader)
		switch {
		case !rw.Written() && r.Context().Err() != nil:
			clog.Info.Printf("%s %s %s %v: client closed request", reqID, r.Method, r.URL, dur)
		case !rw.Written():
			clog.Warn.Printf("%s %s %s %v: no response written", reqID, r.Method, r.URL, dur)
		default:
			statusLogger(clog, rw.status).Printf("%s %s %s %d %sB %v", reqID, r.Method, r.URL, rw.status, englishPrinter.Sprint(rw.length), dur)
		}
	})
}

func statusLogger(clog *cmdlog.Logger, status int) *log.Logger {
	switch {
	case status < 300:
		return clog.Success
	case status < 400:
		return clog.Info
	case status < 500:
		return clog.Warn
	default:
		return clog.Error
	}
}

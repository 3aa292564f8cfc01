package arrangecli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"cdr.dev/slog"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/arrangelib"
	"oss.terrastruct.com/arrange/lib/log"
	"oss.terrastruct.com/arrange/lib/version"
	"oss.terrastruct.com/arrange/lib/xhttp"
	"oss.terrastruct.com/arrange/lib/xmain"
)

// ServeOptions bound the work a single request may cause.
type ServeOptions struct {
	// Timeout cuts each layout short. Zero means no limit.
	Timeout time.Duration
	// MaxItems rejects larger documents with a 413. Zero means no limit.
	MaxItems int
}

func serveCmd(ctx context.Context, ms *xmain.State, host, port string, maxConns int, opts ServeOptions) error {
	l, err := xhttp.Listen(net.JoinHostPort(host, port), maxConns)
	if err != nil {
		return err
	}
	ms.Log.Success.Printf("listening on http://%v", l.Addr())

	s := xhttp.NewServer(ms.Log.Error, NewHandler(ctx, ms, opts))
	err = xhttp.Serve(ctx, 5*time.Second, s, l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type server struct {
	ms   *xmain.State
	opts ServeOptions
}

// NewHandler returns the HTTP API. Request contexts carry the logger of ctx
// annotated with the request id.
func NewHandler(ctx context.Context, ms *xmain.State, opts ServeOptions) http.Handler {
	s := &server{
		ms:   ms,
		opts: opts,
	}

	r := chi.NewRouter()
	r.Use(s.requestID(ctx))
	r.Method(http.MethodPost, "/v1/layout", s.handler(s.handleLayout))
	r.Method(http.MethodGet, "/v1/strategies", s.handler(s.handleStrategies))
	r.Method(http.MethodGet, "/healthz", s.handler(s.handleHealth))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		xhttp.JSON(ms.Log, w, http.StatusNotFound, map[string]interface{}{
			"error": http.StatusText(http.StatusNotFound),
		})
	})
	return xhttp.Log(ms.Log, r)
}

func (s *server) handler(fn xhttp.HandlerFunc) http.Handler {
	return xhttp.HandlerFuncAdapter{
		Log:  s.ms.Log,
		Func: fn,
	}
}

// requestID reuses the caller's X-Request-Id or assigns a new one.
func (s *server) requestID(base context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(xhttp.RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(xhttp.RequestIDHeader, id)

			ctx := log.With(r.Context(), log.From(base))
			ctx = log.Fields(ctx, slog.F("request_id", id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) error {
	var doc arrangegraph.Document
	err := xhttp.DecodeJSON(r, &doc)
	if err != nil {
		return err
	}
	err = doc.Validate()
	if err != nil {
		return xhttp.Errorf(http.StatusBadRequest, err.Error(), "%w", err)
	}
	if s.opts.MaxItems > 0 && len(doc.Items) > s.opts.MaxItems {
		msg := fmt.Sprintf("too many items: %d, at most %d are laid out per request", len(doc.Items), s.opts.MaxItems)
		return xhttp.Errorf(http.StatusRequestEntityTooLarge, msg, "%s", msg)
	}

	res, err := layoutDocument(r.Context(), &layoutConfig{timeout: s.opts.Timeout}, &doc)
	if err != nil {
		return fmt.Errorf("failed to lay out: %w", err)
	}
	xhttp.JSON(s.ms.Log, w, http.StatusOK, res)
	return nil
}

func (s *server) handleStrategies(w http.ResponseWriter, r *http.Request) error {
	xhttp.JSON(s.ms.Log, w, http.StatusOK, map[string]interface{}{
		"strategies": arrangelib.Strategies(),
	})
	return nil
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	xhttp.JSON(s.ms.Log, w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": version.Version,
	})
	return nil
}

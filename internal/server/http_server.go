package server

import (
	"context"
	"net/http"
)

// httpServer is the minimal server surface the wiring needs. Tests swap in
// fakes; production uses netHTTPServer. Handler is exposed so tests can
// drive the full middleware-and-router stack without binding a port.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

// netHTTPServer adapts *http.Server to the httpServer surface.
type netHTTPServer struct {
	srv *http.Server
}

func (s netHTTPServer) ListenAndServe() error { return s.srv.ListenAndServe() }

func (s netHTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

func (s netHTTPServer) Addr() string { return s.srv.Addr }

func (s netHTTPServer) Handler() http.Handler { return s.srv.Handler }

package site

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// ServeOptions configures ListenAndServe.
type ServeOptions struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// OnListen is called with the bound address once the listener is open.
	OnListen func(addr string)
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully within ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, opts ServeOptions) error {
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 10 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return err
	}
	if opts.OnListen != nil {
		opts.OnListen(ln.Addr().String())
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.opts.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errc
	return nil
}

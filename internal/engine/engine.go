package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"mungebits/internal/pipeline"
	"mungebits/internal/transport"
)

type Engine struct {
	transport *transport.Server
	runner    *pipeline.Runner
	stream    *pipeline.Stream
	log       *slog.Logger
}

// Addr is the address the Predictor service listens on.
func (e *Engine) Addr() net.Addr { return e.transport.Addr() }

// Run serves until ctx is done or the stream fails. A stream failure is
// returned once the server has stopped.
func (e *Engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	if e.stream != nil {
		go func() {
			if err := e.stream.Run(ctx); err != nil && ctx.Err() == nil {
				e.log.Error("stream stopped", "err", err)
				errc <- err
			}
			cancel()
		}()
	}
	go func() {
		<-ctx.Done()
		e.transport.Stop()
	}()

	e.log.Info("serving predictions", "addr", e.Addr().String(), "pipeline", e.runner.Name())
	err := e.transport.Serve()
	e.close()
	select {
	case serr := <-errc:
		return fmt.Errorf("stream: %w", serr)
	default:
		return err
	}
}

func (e *Engine) close() {
	var errs []error
	if e.stream != nil {
		errs = append(errs, e.stream.Close())
	}
	errs = append(errs, e.runner.Close())
	if err := errors.Join(errs...); err != nil {
		e.log.Warn("shutdown", "err", err)
	}
}

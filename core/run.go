package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/luispdm/cc-redis/store"
)

// Run configures the server and serves until a fatal error or a signal.
func (s *Server) Run() error {
	// configure the server
	if err := s.Configure(os.Args[1:]); err != nil {
		s.Error().Err(err).Msg("configuration error")
		return err
	}

	// bind the TCP listener
	if err := s.Listen(); err != nil {
		s.Error().Err(err).Msg("could not listen")
		return err
	}

	// serve and block
	err := s.Serve()
	switch {
	case err == nil:
		break // full success
	case errors.Is(err, ErrClosed), errors.Is(err, ErrSignal):
		s.Info().Msg(err.Error())
		return nil
	default:
		s.Error().Err(err).Msg("server error")
	}

	return err
}

// Listen binds the TCP listener on the configured address.
func (s *Server) Listen() error {
	bind := NormalizeBind(s.K.String("bind"))

	var lc net.ListenConfig
	l, err := lc.Listen(s.Ctx, "tcp", bind)
	if err != nil {
		return err
	}
	s.listener = l

	s.Info().Msgf("listening on %s", l.Addr())
	return nil
}

// Serve runs the reaper, the optional debug HTTP listener and the accept
// loop, until the server context is cancelled. Each accepted connection is
// serviced on its own goroutine.
func (s *Server) Serve() error {
	// stop on signals
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		select {
		case v := <-sig:
			s.Cancel(fmt.Errorf("%w: %s", ErrSignal, v))
		case <-s.Ctx.Done():
		}
	}()

	// background expiry
	reaper := store.NewReaper(s.DB, store.ReaperConfig{
		Interval:  s.K.Duration("reaper-interval"),
		Sample:    s.K.Int("reaper-sample"),
		Threshold: s.K.Float64("reaper-threshold"),
		Metrics:   s.Metrics,
	}, s.With().Str("task", "reaper").Logger())
	go reaper.Run(s.Ctx)

	// debug HTTP listener
	if addr := s.K.String("http"); addr != "" {
		s.startHTTP(addr)
	}

	// unblock Accept and tear down connections once the context goes
	go func() {
		<-s.Ctx.Done()
		s.listener.Close()
		s.closeConns()
	}()

	for {
		nc, err := s.listener.Accept()
		if err != nil {
			if cause := context.Cause(s.Ctx); cause != nil {
				s.wg.Wait()
				return cause
			}
			s.Error().Err(err).Msg("accept error")
			s.Cancel(err)
			s.wg.Wait()
			return err
		}

		s.mConns.Inc()
		c := s.newConn(nc)
		s.wg.Add(1)
		go c.serve()
	}
}

func (s *Server) closeConns() {
	s.conns.Range(func(_ uint64, c *conn) bool {
		c.nc.Close()
		return true
	})
}

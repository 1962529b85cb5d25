// Package core wires the wire codec, the command model and the keyspace
// into a TCP server: configuration, lifecycle, connection driving and
// operational metrics.
package core

import (
	"context"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/knadh/koanf/v2"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/luispdm/cc-redis/command"
	"github.com/luispdm/cc-redis/store"
)

// Server is a single-node in-memory key/value server speaking the framed
// binary protocol over TCP.
type Server struct {
	zerolog.Logger

	Ctx    context.Context
	Cancel context.CancelCauseFunc

	F  *pflag.FlagSet // global flags
	K  *koanf.Koanf   // global config
	DB *store.DB      // the keyspace

	Metrics *metrics.Set

	repo map[string]command.ParseFunc // maps command token to its parser

	listener net.Listener
	conns    *xsync.Map[uint64, *conn] // live connections, for shutdown
	connID   atomic.Uint64
	wg       sync.WaitGroup

	mConns     *metrics.Counter
	mDecodeErr *metrics.Counter
	mCmdErr    *metrics.Counter
}

// NewServer creates a new server instance using given repositories of
// command parsers.
func NewServer(repo ...map[string]command.ParseFunc) *Server {
	s := new(Server)
	s.Ctx, s.Cancel = context.WithCancelCause(context.Background())

	// default logger
	s.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
	})

	// the keyspace
	s.DB = store.New()

	// global config
	s.K = koanf.New(".")

	// global CLI flags
	s.F = pflag.NewFlagSet("ccredis", pflag.ExitOnError)
	s.addFlags()

	// command repository
	s.repo = make(map[string]command.ParseFunc)
	for i := range repo {
		s.AddRepo(repo[i])
	}

	s.conns = xsync.NewMap[uint64, *conn]()
	s.initMetrics()

	return s
}

// AddRepo adds mapping between command tokens and their parse funcs.
func (s *Server) AddRepo(cmds map[string]command.ParseFunc) {
	for cmd, pf := range cmds {
		s.repo[cmd] = pf
	}
}

// Addr returns the bound listen address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop requests a clean shutdown.
func (s *Server) Stop() {
	s.Cancel(ErrClosed)
}

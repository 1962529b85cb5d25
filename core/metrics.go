package core

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

func (s *Server) initMetrics() {
	m := metrics.NewSet()
	s.Metrics = m

	s.mConns = m.NewCounter("connections_accepted_total")
	s.mDecodeErr = m.NewCounter("decode_errors_total")
	s.mCmdErr = m.NewCounter("command_errors_total")
	m.NewGauge("connections_active", func() float64 {
		return float64(s.conns.Size())
	})
	m.NewGauge("keyspace_keys", func() float64 {
		return float64(s.DB.Len())
	})
}

// cmdCounter returns the per-command counter for a lowercased token.
func (s *Server) cmdCounter(name string) *metrics.Counter {
	return s.Metrics.GetOrCreateCounter(fmt.Sprintf(`commands_total{cmd=%q}`, name))
}

package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/rs/zerolog"

	"github.com/luispdm/cc-redis/store"
)

// DefaultBind is the default TCP listen address.
const DefaultBind = "127.0.0.1:6379"

func (s *Server) addFlags() {
	f := s.F
	f.SortFlags = false
	f.Usage = s.usage
	f.BoolP("version", "v", false, "print detailed version info and quit")
	f.StringP("log", "l", "info", "log level (debug/info/warn/error/disabled)")
	f.StringP("bind", "b", DefaultBind, "TCP listen address")
	f.String("http", "", "debug HTTP listen address for metrics and health (off when empty)")
	f.Int("read-buffer", 4096, "per-connection read buffer size in bytes")
	f.Float64("limit-rate", 0, "per-connection command rate limit per second (0 means off)")
	f.Duration("reaper-interval", store.DefaultReapInterval, "expiry reaper tick interval")
	f.Int("reaper-sample", store.DefaultReapSample, "entries the expiry reaper samples per pass")
	f.Float64("reaper-threshold", store.DefaultReapThreshold, "expired fraction below which a reaper tick stops")
}

func (s *Server) usage() {
	fmt.Fprintf(os.Stderr, `Usage: ccredis [OPTIONS]

Options:
`)
	s.F.PrintDefaults()

	// iterate over commands
	var cmds []string
	for cmd := range s.repo {
		cmds = append(cmds, cmd)
	}
	slices.Sort(cmds)
	fmt.Fprintf(os.Stderr, "\nSupported commands: %s\n", strings.ToUpper(strings.Join(cmds, " ")))
}

// Configure parses CLI args and exports them into the global config.
func (s *Server) Configure(args []string) error {
	// parse and export flags into koanf
	if err := s.F.Parse(args); err != nil {
		return fmt.Errorf("could not parse CLI flags: %w", err)
	}
	s.K.Load(posflag.Provider(s.F, ".", s.K), nil)

	// print version and quit?
	if s.K.Bool("version") {
		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			fmt.Fprintf(os.Stderr, "ccredis build info:\n%s", bi)
		}
		os.Exit(1)
	}

	// debugging level
	if ll := s.K.String("log"); len(ll) > 0 {
		lvl, err := zerolog.ParseLevel(ll)
		if err != nil {
			return err
		}
		zerolog.SetGlobalLevel(lvl)
	}

	return nil
}

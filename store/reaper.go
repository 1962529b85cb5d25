package store

import (
	"context"
	"math/rand"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/rs/zerolog"
)

// Reaper defaults.
const (
	DefaultReapInterval  = time.Second
	DefaultReapSample    = 100
	DefaultReapThreshold = 0.25
)

// ReaperConfig tunes the background expiry sampler.
type ReaperConfig struct {
	Interval  time.Duration // tick cadence
	Sample    int           // entries sampled per pass
	Threshold float64       // stop looping when removed/sampled drops to this
	Metrics   *metrics.Set  // where to register counters (optional)
}

// Reaper is the active half of expiration: on every tick it samples the
// keyspace and removes expired entries, repeating while the expired
// fraction of the sample stays above the threshold.
type Reaper struct {
	zerolog.Logger

	db  *DB
	cfg ReaperConfig

	removed *metrics.Counter
}

// NewReaper returns a reaper over db. Zero config fields get defaults.
func NewReaper(db *DB, cfg ReaperConfig, log zerolog.Logger) *Reaper {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultReapInterval
	}
	if cfg.Sample <= 0 {
		cfg.Sample = DefaultReapSample
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultReapThreshold
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewSet()
	}

	return &Reaper{
		Logger:  log,
		db:      db,
		cfg:     cfg,
		removed: cfg.Metrics.GetOrCreateCounter("reaper_removed_total"),
	}
}

// Run ticks until ctx is cancelled. It blocks; run it on its own goroutine.
func (r *Reaper) Run(ctx context.Context) {
	r.Debug().
		Dur("interval", r.cfg.Interval).
		Int("sample", r.cfg.Sample).
		Float64("threshold", r.cfg.Threshold).
		Msg("reaper started")

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Debug().Msg("reaper stopped")
			return
		case <-ticker.C:
			if n := r.tick(); n > 0 {
				r.Debug().Int("removed", n).Msg("reaped expired entries")
			}
		}
	}
}

// tick runs sampling passes until one of them finds the expired fraction at
// or below the threshold. Each pass is its own critical section; the sleep
// between ticks happens out here.
func (r *Reaper) tick() (total int) {
	for {
		sampled, removed := r.db.reapPass(time.Now(), r.cfg.Sample)
		if removed > 0 {
			r.removed.Add(removed)
			total += removed
		}
		if sampled == 0 || float64(removed)/float64(sampled) <= r.cfg.Threshold {
			return total
		}
	}
}

// reapPass samples up to n distinct positions, classifies them against now,
// and removes the expired ones. Sampling and removal share one critical
// section; no position escapes it.
func (db *DB) reapPass(now time.Time, n int) (sampled, removed int) {
	db.mu.Lock()
	defer db.mu.Unlock()

	m := db.ks.len()
	s := min(n, m)
	if s == 0 {
		return 0, 0
	}

	// collect first, then remove: removal swaps entries around, which would
	// invalidate positions still waiting to be inspected
	var doomed []string
	inspect := func(i int) {
		if key, obj := db.ks.getByIndex(i); obj.expiredAt(now) {
			doomed = append(doomed, key)
		}
	}
	if s == m {
		for i := range m {
			inspect(i)
		}
	} else {
		picked := make(map[int]struct{}, s)
		for len(picked) < s {
			picked[rand.Intn(m)] = struct{}{}
		}
		for i := range picked {
			inspect(i)
		}
	}

	for _, key := range doomed {
		db.ks.removeUnordered(key)
	}
	return s, len(doomed)
}

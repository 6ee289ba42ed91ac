package logging

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// StartupTrace tracks cold start milestones from process launch to the first
// armed selection surface. Thread-safe; enabled only at debug/trace level.
type StartupTrace struct {
	mu         sync.Mutex
	t0         time.Time
	last       time.Time
	milestones []Milestone
	enabled    bool
	logger     *zerolog.Logger
}

// Milestone is one timing checkpoint during startup.
type Milestone struct {
	Name    string
	Elapsed time.Duration // since t0
	Delta   time.Duration // since previous milestone
}

var (
	globalTrace     *StartupTrace
	globalTraceMu   sync.Mutex
	globalTraceOnce sync.Once
)

// InitStartupTrace captures T0. Call as early as possible in main().
func InitStartupTrace(logLevel string) {
	globalTraceOnce.Do(func() {
		now := time.Now()
		globalTraceMu.Lock()
		globalTrace = &StartupTrace{
			t0:      now,
			last:    now,
			enabled: logLevel == "debug" || logLevel == "trace",
		}
		globalTraceMu.Unlock()
	})
}

// Trace returns the global startup trace, or a disabled no-op one.
func Trace() *StartupTrace {
	globalTraceMu.Lock()
	defer globalTraceMu.Unlock()
	if globalTrace == nil {
		return &StartupTrace{}
	}
	return globalTrace
}

// SetLogger attaches the logger used for milestone emission.
func (st *StartupTrace) SetLogger(logger *zerolog.Logger) {
	if st == nil || !st.enabled {
		return
	}
	st.mu.Lock()
	st.logger = logger
	st.mu.Unlock()
}

// Mark records a milestone named after the phase that just finished.
func (st *StartupTrace) Mark(name string) {
	if st == nil || !st.enabled {
		return
	}

	st.mu.Lock()
	now := time.Now()
	m := Milestone{Name: name, Elapsed: now.Sub(st.t0), Delta: now.Sub(st.last)}
	st.last = now
	st.milestones = append(st.milestones, m)
	logger := st.logger
	st.mu.Unlock()

	if logger != nil {
		logger.Debug().
			Str("milestone", m.Name).
			Dur("elapsed", m.Elapsed).
			Dur("delta", m.Delta).
			Msg("startup trace")
	}
}

// Finish emits a one-line summary of all recorded milestones.
func (st *StartupTrace) Finish() {
	if st == nil || !st.enabled {
		return
	}

	st.mu.Lock()
	logger := st.logger
	total := time.Since(st.t0)
	count := len(st.milestones)
	st.mu.Unlock()

	if logger != nil {
		logger.Debug().
			Dur("total", total).
			Int("milestones", count).
			Msg("startup complete")
	}
}

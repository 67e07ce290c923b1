// Package progress emits structured logs while a batch of duration
// literals is parsed, so runs over large inputs stay observable without
// flooding the log.
package progress

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Meter counts parsed lines and logs progress on line-count milestones
// and on a fixed interval.
type Meter struct {
	LineStep       int64         // log every N lines processed
	RenderInterval time.Duration // interval for time-based logs
	Logger         *slog.Logger
	Quiet          bool

	processed atomic.Int64
	invalid   atomic.Int64

	nextLineLog  int64
	done         chan struct{}
	stopOnce     sync.Once
	lastInterval int64
	lastTime     time.Time
}

// New creates a meter with sane defaults.
func New(lineStep int64, interval time.Duration, logger *slog.Logger, quiet bool) *Meter {
	if lineStep <= 0 {
		lineStep = 100000
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Meter{
		LineStep:       lineStep,
		RenderInterval: interval,
		Logger:         logger,
		Quiet:          quiet,
		nextLineLog:    lineStep,
		done:           make(chan struct{}),
	}
}

// Observe records one parsed line and logs when a line milestone is
// crossed. ok reports whether the line parsed successfully.
func (m *Meter) Observe(ok bool) {
	n := m.processed.Add(1)
	if !ok {
		m.invalid.Add(1)
	}
	if m.Quiet || m.Logger == nil {
		return
	}
	for n >= m.nextLineLog {
		m.Logger.Info("parse_progress",
			"lines", m.nextLineLog,
			"invalid", m.invalid.Load(),
		)
		m.nextLineLog += m.LineStep
	}
}

// Start begins interval-based logging in a goroutine.
func (m *Meter) Start() {
	if m.Quiet || m.Logger == nil || m.RenderInterval <= 0 {
		return
	}
	m.lastTime = time.Now()
	go func() {
		ticker := time.NewTicker(m.RenderInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.logInterval()
			case <-m.done:
				return
			}
		}
	}()
}

// Stop ends interval-based logging and emits a final summary. It is
// safe to call more than once; only the first call logs.
func (m *Meter) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
		if m.Quiet || m.Logger == nil {
			return
		}
		m.Logger.Info("parse_summary",
			"lines", m.processed.Load(),
			"invalid", m.invalid.Load(),
		)
	})
}

// Processed returns the number of lines observed so far.
func (m *Meter) Processed() int64 { return m.processed.Load() }

// Invalid returns the number of lines that failed to parse.
func (m *Meter) Invalid() int64 { return m.invalid.Load() }

func (m *Meter) logInterval() {
	n := m.processed.Load()
	// Throttle: only log if lines changed since last interval
	if n == m.lastInterval {
		return
	}

	now := time.Now()
	var rate int64
	if elapsed := now.Sub(m.lastTime).Seconds(); elapsed > 0 {
		rate = int64(float64(n-m.lastInterval) / elapsed)
		if rate < 0 {
			rate = 0
		}
	}

	m.Logger.Info("parse_progress",
		"lines", n,
		"invalid", m.invalid.Load(),
		"lines_per_sec", rate,
	)
	m.lastInterval = n
	m.lastTime = now
}

package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redlight/internal/config"
	"github.com/vovakirdan/redlight/internal/games/redlight"
	"github.com/vovakirdan/redlight/internal/storage"
)

// flushEvery is the number of samples buffered before a batch insert.
const flushEvery = 64

// Recorder buffers tick samples and writes them to the trace store in batches.
// Write failures are logged and disable further recording; the game goes on.
type Recorder struct {
	store   *storage.Store
	traceID int64
	buf     []storage.Sample
	seq     int
	failed  bool
	logger  *log.Logger
}

// NewRecorder starts a trace for a session.
func NewRecorder(store *storage.Store, source string, seed, tickMS int64, cfg config.GameConfig, logger *log.Logger) (*Recorder, error) {
	cfgYAML, err := config.MarshalGame(cfg)
	if err != nil {
		return nil, err
	}
	id, err := store.BeginTrace(storage.Trace{
		Source:     source,
		Seed:       seed,
		TickMS:     tickMS,
		ConfigYAML: string(cfgYAML),
	})
	if err != nil {
		return nil, fmt.Errorf("session: cannot start recording: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		store:   store,
		traceID: id,
		buf:     make([]storage.Sample, 0, flushEvery),
		logger:  logger,
	}, nil
}

// TraceID returns the ID of the trace being written.
func (r *Recorder) TraceID() int64 {
	return r.traceID
}

// Record buffers one tick.
func (r *Recorder) Record(nowMS int64, raw, smoothed float64, state redlight.State) {
	if r.failed {
		return
	}
	r.buf = append(r.buf, storage.Sample{
		Seq:      r.seq,
		NowMS:    nowMS,
		Raw:      raw,
		Smoothed: smoothed,
		State:    state.String(),
	})
	r.seq++
	if len(r.buf) >= flushEvery {
		r.flush()
	}
}

func (r *Recorder) flush() {
	if err := r.store.AppendSamples(r.traceID, r.buf); err != nil {
		r.logger.Error("trace recording stopped", "trace", r.traceID, "error", err)
		r.failed = true
	}
	r.buf = r.buf[:0]
}

// Finish flushes pending samples and writes the trace summary.
func (r *Recorder) Finish(sum Summary, outcome string) error {
	if !r.failed && len(r.buf) > 0 {
		r.flush()
	}
	return r.store.FinishTrace(r.traceID, storage.TraceResult{
		Ticks:   sum.Ticks,
		Deaths:  sum.Deaths,
		Level:   sum.MaxLevel,
		Cycle:   sum.MaxCycle,
		Outcome: outcome,
	})
}

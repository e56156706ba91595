package pipeline

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"

	"github.com/lunapnr/pnrcore/internal/logging"
	"github.com/lunapnr/pnrcore/internal/mtqueue"
)

// RunID identifies one RunUpTo generation. Generated with xid.New()
// rather than the internal uint64 generation counter, since that
// counter resets per-process and isn't fit to key persisted run
// history (external/resultstore) or to correlate events across a
// restart.
type RunID = xid.ID

// Status mirrors the original tool's Tasks::Task::Status enum.
type Status int32

const (
	StatusInvalid Status = iota
	StatusReset
	StatusRunning
	StatusProgress
	StatusDoneOK
	StatusDoneError
)

func (s Status) isDone() bool { return s == StatusDoneOK }

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusReset:
		return "reset"
	case StatusRunning:
		return "running"
	case StatusProgress:
		return "progress"
	case StatusDoneOK:
		return "done-ok"
	case StatusDoneError:
		return "done-error"
	default:
		return "unknown"
	}
}

// ErrUnknownStage is returned when RunUpTo names a stage the pipeline
// was not built with.
var ErrUnknownStage = errors.New("pipeline: unknown stage")

// ErrDuplicateStage is returned by New when two stages share a name.
var ErrDuplicateStage = errors.New("pipeline: duplicate stage name")

// StageFunc does the work of one stage. report may be called zero or
// more times with a 0-100 completion percentage.
type StageFunc func(report func(percent int)) error

// Stage is one named unit of work in the pipeline's fixed order.
type Stage struct {
	Name string
	Run  StageFunc
}

type stageEntry struct {
	name   string
	run    StageFunc
	status atomic.Int32
}

func (e *stageEntry) getStatus() Status  { return Status(e.status.Load()) }
func (e *stageEntry) setStatus(s Status) { e.status.Store(int32(s)) }

// Pipeline sequences a fixed, ordered list of named stages (spec §4.10).
// Stage execution always runs on a dedicated goroutine; the caller
// observes progress only through Events and per-stage Status.
type Pipeline struct {
	mu        sync.Mutex
	stages    []*stageEntry
	index     map[string]int
	events    *mtqueue.Queue[Event]
	running   atomic.Uint64
	lastRunID RunID
}

// New builds a Pipeline from stages, in the given order. Stage names
// must be non-empty and unique.
func New(stages ...Stage) (*Pipeline, error) {
	p := &Pipeline{
		index:  make(map[string]int, len(stages)),
		events: mtqueue.New[Event](),
	}
	for _, s := range stages {
		if s.Name == "" {
			return nil, fmt.Errorf("pipeline.New: %w: empty stage name", ErrUnknownStage)
		}
		if _, exists := p.index[s.Name]; exists {
			return nil, fmt.Errorf("pipeline.New: stage %q: %w", s.Name, ErrDuplicateStage)
		}
		entry := &stageEntry{name: s.Name, run: s.Run}
		entry.setStatus(StatusReset)
		p.index[s.Name] = len(p.stages)
		p.stages = append(p.stages, entry)
	}
	return p, nil
}

// Events returns the single-consumer queue stages post {stage, state}
// messages to (spec §4.10's orchestrator message events).
func (p *Pipeline) Events() *mtqueue.Queue[Event] { return p.events }

// Status reports the current status of the named stage.
func (p *Pipeline) Status(name string) (Status, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx, ok := p.index[name]
	if !ok {
		return StatusInvalid, fmt.Errorf("pipeline.Status: %q: %w", name, ErrUnknownStage)
	}
	return p.stages[idx].getStatus(), nil
}

// RunUpTo reruns only the stages between the first not-done
// predecessor and the named stage, inclusive (spec §4.10), on a fresh
// background goroutine. A prior in-flight run is abandoned: it keeps
// executing its current stage to completion (mirroring the original's
// std::thread::detach, which never interrupts mid-stage work), posting
// that stage's progress and done events under its own RunID and setting
// its status, but stops before starting any further stage.
func (p *Pipeline) RunUpTo(name string) error {
	p.mu.Lock()
	lastIdx, ok := p.index[name]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("pipeline.RunUpTo: %q: %w", name, ErrUnknownStage)
	}

	for idx := lastIdx; idx < len(p.stages); idx++ {
		p.stages[idx].setStatus(StatusReset)
	}

	firstIdx := 0
	for firstIdx < lastIdx {
		if !p.stages[firstIdx].getStatus().isDone() {
			break
		}
		firstIdx++
	}

	gen := p.running.Add(1)
	runID := xid.New()
	p.lastRunID = runID
	p.mu.Unlock()

	go p.runRange(gen, runID, firstIdx, lastIdx)
	return nil
}

// CurrentRunID returns the RunID of the most recently started run,
// whether or not it has finished.
func (p *Pipeline) CurrentRunID() RunID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastRunID
}

func (p *Pipeline) runRange(gen uint64, runID RunID, first, last int) {
	for idx := first; idx <= last; idx++ {
		if p.running.Load() != gen {
			return // a newer RunUpTo has taken over; abandon before starting the next stage
		}

		entry := p.stages[idx]
		entry.setStatus(StatusRunning)
		p.events.Push(Event{RunID: runID, Stage: entry.name, State: StateRunning})
		logging.Infof("pipeline: run %s: stage %q running", runID, entry.name)

		report := func(percent int) {
			entry.setStatus(StatusProgress)
			p.events.Push(Event{RunID: runID, Stage: entry.name, State: StateProgress, Progress: percent})
		}

		err := entry.run(report)
		if err != nil {
			entry.setStatus(StatusDoneError)
			p.events.Push(Event{RunID: runID, Stage: entry.name, State: StateDoneError, Err: err})
			logging.Errorf("pipeline: run %s: stage %q failed: %v", runID, entry.name, err)
			return // subsequent stages are not invoked; prior done flags are preserved
		}

		entry.setStatus(StatusDoneOK)
		p.events.Push(Event{RunID: runID, Stage: entry.name, State: StateDoneOK, Progress: 100})
		logging.Infof("pipeline: run %s: stage %q done", runID, entry.name)
	}
}

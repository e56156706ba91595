// SPDX-License-Identifier: MIT
package pipeline_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunapnr/pnrcore/pipeline"
)

func recordingStage(name string, calls *[]string, mu *sync.Mutex, fail bool) pipeline.Stage {
	return pipeline.Stage{
		Name: name,
		Run: func(report func(int)) error {
			mu.Lock()
			*calls = append(*calls, name)
			mu.Unlock()
			if fail {
				return errors.New("boom")
			}
			return nil
		},
	}
}

func drainUntilDone(t *testing.T, p *pipeline.Pipeline, lastStage string) []pipeline.Event {
	t.Helper()
	var events []pipeline.Event
	for {
		ev := p.Events().Pop()
		events = append(events, ev)
		if ev.Stage == lastStage && (ev.State == pipeline.StateDoneOK || ev.State == pipeline.StateDoneError) {
			return events
		}
	}
}

func TestNewRejectsEmptyStageName(t *testing.T) {
	_, err := pipeline.New(pipeline.Stage{Name: "", Run: func(func(int)) error { return nil }})
	require.Error(t, err)
}

func TestNewRejectsDuplicateStageName(t *testing.T) {
	run := func(func(int)) error { return nil }
	_, err := pipeline.New(
		pipeline.Stage{Name: "a", Run: run},
		pipeline.Stage{Name: "a", Run: run},
	)
	require.ErrorIs(t, err, pipeline.ErrDuplicateStage)
}

func TestStatusUnknownStageErrors(t *testing.T) {
	p, err := pipeline.New(pipeline.Stage{Name: "a", Run: func(func(int)) error { return nil }})
	require.NoError(t, err)
	_, err = p.Status("nope")
	require.ErrorIs(t, err, pipeline.ErrUnknownStage)
}

func TestRunUpToRunsStagesInOrder(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	p, err := pipeline.New(
		recordingStage("a", &calls, &mu, false),
		recordingStage("b", &calls, &mu, false),
		recordingStage("c", &calls, &mu, false),
	)
	require.NoError(t, err)

	require.NoError(t, p.RunUpTo("c"))
	drainUntilDone(t, p, "c")

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"a", "b", "c"}, calls)

	for _, name := range []string{"a", "b", "c"} {
		status, err := p.Status(name)
		require.NoError(t, err)
		require.Equal(t, pipeline.StatusDoneOK, status)
	}
}

func TestRunUpToStopsOnError(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	p, err := pipeline.New(
		recordingStage("a", &calls, &mu, false),
		recordingStage("b", &calls, &mu, true),
		recordingStage("c", &calls, &mu, false),
	)
	require.NoError(t, err)

	require.NoError(t, p.RunUpTo("c"))
	events := drainUntilDone(t, p, "b")
	require.Equal(t, pipeline.StateDoneError, events[len(events)-1].State)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"a", "b"}, calls) // c never runs: prior stages' done flags preserved, subsequent stage skipped

	statusA, _ := p.Status("a")
	statusC, _ := p.Status("c")
	require.Equal(t, pipeline.StatusDoneOK, statusA)
	require.Equal(t, pipeline.StatusReset, statusC)
}

func TestCurrentRunIDChangesAcrossRuns(t *testing.T) {
	p, err := pipeline.New(pipeline.Stage{Name: "a", Run: func(func(int)) error { return nil }})
	require.NoError(t, err)

	require.NoError(t, p.RunUpTo("a"))
	events := drainUntilDone(t, p, "a")
	first := events[len(events)-1].RunID
	require.NotEqual(t, pipeline.RunID{}, first)

	require.NoError(t, p.RunUpTo("a"))
	events = drainUntilDone(t, p, "a")
	second := events[len(events)-1].RunID

	require.NotEqual(t, first, second)
	require.Equal(t, second, p.CurrentRunID())
}

func TestRunUpToResumesFromFirstNotDonePredecessor(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	p, err := pipeline.New(
		recordingStage("a", &calls, &mu, false),
		recordingStage("b", &calls, &mu, false),
		recordingStage("c", &calls, &mu, false),
	)
	require.NoError(t, err)

	require.NoError(t, p.RunUpTo("b"))
	drainUntilDone(t, p, "b")

	mu.Lock()
	require.Equal(t, []string{"a", "b"}, calls)
	mu.Unlock()

	require.NoError(t, p.RunUpTo("c"))
	drainUntilDone(t, p, "c")

	mu.Lock()
	defer mu.Unlock()
	// a was already done; rerunning up to c must not re-invoke it.
	require.Equal(t, []string{"a", "b", "c"}, calls)
}

// SPDX-License-Identifier: MIT
package resultstore_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"github.com/lunapnr/pnrcore/external/resultstore"
	"github.com/lunapnr/pnrcore/pipeline"
)

func openTestStore(t *testing.T) *resultstore.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.sqlite3")
	store, err := resultstore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	return store
}

func TestRecordEventAndHistoryRoundTrip(t *testing.T) {
	store := openTestStore(t)
	runID := xid.New()

	require.NoError(t, store.RecordEvent(pipeline.Event{
		RunID: runID, Stage: "place", State: pipeline.StateRunning,
	}))
	require.NoError(t, store.RecordEvent(pipeline.Event{
		RunID: runID, Stage: "place", State: pipeline.StateDoneOK, Progress: 100,
	}))

	history, err := store.History(runID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "place", history[0].Stage)
	require.Equal(t, pipeline.StateRunning.String(), history[0].State)
	require.Equal(t, pipeline.StateDoneOK.String(), history[1].State)
	require.Equal(t, 100, history[1].Progress)
	require.Empty(t, history[1].Err)
}

func TestRecordEventStoresErrorText(t *testing.T) {
	store := openTestStore(t)
	runID := xid.New()

	require.NoError(t, store.RecordEvent(pipeline.Event{
		RunID: runID, Stage: "global_route", State: pipeline.StateDoneError,
		Err: errors.New("capacity exhausted"),
	}))

	history, err := store.History(runID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "capacity exhausted", history[0].Err)
}

func TestHistoryIsScopedToRunID(t *testing.T) {
	store := openTestStore(t)
	runA, runB := xid.New(), xid.New()

	require.NoError(t, store.RecordEvent(pipeline.Event{RunID: runA, Stage: "cts", State: pipeline.StateDoneOK}))
	require.NoError(t, store.RecordEvent(pipeline.Event{RunID: runB, Stage: "cts", State: pipeline.StateDoneOK}))

	historyA, err := store.History(runA)
	require.NoError(t, err)
	require.Len(t, historyA, 1)
}

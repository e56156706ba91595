// SPDX-License-Identifier: MIT
package passhttp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunapnr/pnrcore/external/passhttp"
	"github.com/lunapnr/pnrcore/pipeline"
)

func newTestPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	p, err := pipeline.New(
		pipeline.Stage{Name: "a", Run: func(func(int)) error { return nil }},
		pipeline.Stage{Name: "b", Run: func(func(int)) error { return nil }},
	)
	require.NoError(t, err)
	return p
}

func drainToStage(t *testing.T, p *pipeline.Pipeline, name string) {
	t.Helper()
	for {
		ev := p.Events().Pop()
		if ev.Stage == name && (ev.State == pipeline.StateDoneOK || ev.State == pipeline.StateDoneError) {
			return
		}
	}
}

func TestListStagesReportsEachStatus(t *testing.T) {
	p := newTestPipeline(t)
	require.NoError(t, p.RunUpTo("b"))
	drainToStage(t, p, "b")

	router := passhttp.NewRouter(p, []string{"a", "b"})
	req := httptest.NewRequest(http.MethodGet, "/stages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []map[string]string{
		{"stage": "a", "status": "done-ok"},
		{"stage": "b", "status": "done-ok"},
	}, body)
}

func TestStageStatusReturns404ForUnknownStage(t *testing.T) {
	p := newTestPipeline(t)
	router := passhttp.NewRouter(p, []string{"a", "b"})

	req := httptest.NewRequest(http.MethodGet, "/stages/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["error"], "ghost")
}

func TestCurrentRunReturnsRunID(t *testing.T) {
	p := newTestPipeline(t)
	require.NoError(t, p.RunUpTo("a"))
	drainToStage(t, p, "a")

	router := passhttp.NewRouter(p, []string{"a", "b"})
	req := httptest.NewRequest(http.MethodGet, "/runs/current", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, p.CurrentRunID().String(), body["run_id"])
	require.NotEmpty(t, body["run_id"])
}

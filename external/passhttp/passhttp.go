package passhttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lunapnr/pnrcore/pipeline"
)

// stageStatus reports a single stage's current status as JSON.
type stageStatus struct {
	Stage  string `json:"stage"`
	Status string `json:"status"`
}

// errorBody is the JSON body written alongside a non-2xx response.
type errorBody struct {
	Error string `json:"error"`
}

// NewRouter builds a gorilla/mux router exposing p's stage status:
//
//	GET /stages           -> every stage in stageNames, status included
//	GET /stages/{name}    -> the named stage's status, 404 if unknown
//	GET /runs/current     -> the RunID of the most recently started run
func NewRouter(p *pipeline.Pipeline, stageNames []string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/stages", listStagesHandler(p, stageNames)).Methods(http.MethodGet)
	r.HandleFunc("/stages/{name}", stageStatusHandler(p)).Methods(http.MethodGet)
	r.HandleFunc("/runs/current", currentRunHandler(p)).Methods(http.MethodGet)
	return r
}

func listStagesHandler(p *pipeline.Pipeline, stageNames []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]stageStatus, 0, len(stageNames))
		for _, name := range stageNames {
			status, err := p.Status(name)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			out = append(out, stageStatus{Stage: name, Status: status.String()})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func stageStatusHandler(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		status, err := p.Status(name)
		if err != nil {
			if errors.Is(err, pipeline.ErrUnknownStage) {
				writeError(w, http.StatusNotFound, err)
				return
			}
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, stageStatus{Stage: name, Status: status.String()})
	}
}

func currentRunHandler(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, struct {
			RunID string `json:"run_id"`
		}{RunID: p.CurrentRunID().String()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

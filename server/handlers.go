package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mit.edu/dsg/qep/common"
	log "mit.edu/dsg/qep/logging"
	"mit.edu/dsg/qep/planner"
)

// singleRequest carries either query text or an EXPLAIN (FORMAT JSON) document.
type singleRequest struct {
	Query string          `json:"query"`
	Plan  json.RawMessage `json:"plan"`
}

type compareRequest struct {
	Query1 string          `json:"query1"`
	Query2 string          `json:"query2"`
	Plan1  json.RawMessage `json:"plan1"`
	Plan2  json.RawMessage `json:"plan2"`
}

type errorResponse struct {
	ErrorMessage string `json:"ErrorMessage"`
	Stage        string `json:"Stage,omitempty"`
}

func hasPlan(doc json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(doc))
	return trimmed != "" && trimmed != "null"
}

func (s *Server) handleSingle(w http.ResponseWriter, r *http.Request) {
	var req singleRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, routeSingle, err)
		return
	}

	var (
		root *planner.PlanNode
		err  error
	)
	if hasPlan(req.Plan) {
		root, err = s.qep.SingleDocument(req.Plan)
	} else {
		root, err = s.qep.Single(r.Context(), req.Query)
	}
	if err != nil {
		s.fail(w, r, routeSingle, err)
		return
	}
	s.stats.record(routeSingle, false)
	writeJSON(w, http.StatusOK, root)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, routeCompare, err)
		return
	}

	var (
		result any
		err    error
	)
	switch {
	case hasPlan(req.Plan1) && hasPlan(req.Plan2):
		result, err = s.qep.CompareDocuments(req.Plan1, req.Plan2)
	case hasPlan(req.Plan1) || hasPlan(req.Plan2):
		err = common.NewError(common.InvalidQueryError, common.StageParse, "plan1 and plan2 must be given together")
	default:
		result, err = s.qep.Compare(r.Context(), req.Query1, req.Query2)
	}
	if err != nil {
		s.fail(w, r, routeCompare, err)
		return
	}
	s.stats.record(routeCompare, false)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleOperators(w http.ResponseWriter, _ *http.Request) {
	s.stats.record(routeOperators, false)
	writeJSON(w, http.StatusOK, s.qep.Builder.Explainer().Operators())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.stats.record(routeStats, false)
	writeJSON(w, http.StatusOK, s.stats.snapshot())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return common.WrapError(common.InvalidQueryError, common.StageParse, err, "invalid request body")
	}
	return nil
}

// statusFor maps pipeline errors to HTTP status codes. An unreachable plan
// source is the server's fault; everything else is a bad request.
func statusFor(err error) int {
	if common.IsCode(err, common.PlanSourceError) {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, route string, err error) {
	s.stats.record(route, true)

	resp := errorResponse{ErrorMessage: "Invalid SQL Query"}
	if qe, ok := common.AsError(err); ok {
		resp.Stage = string(qe.Stage)
		resp.ErrorMessage = userMessage(qe)
	}
	status := statusFor(err)
	log.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("request failed")
	writeJSON(w, status, resp)
}

func userMessage(qe common.QEPError) string {
	switch qe.Code {
	case common.PlanSourceError:
		return "Query planner unavailable"
	case common.MalformedPlanInputError:
		return fmt.Sprintf("Malformed query plan: %s", qe.ErrString)
	case common.DiffAlignmentError:
		return "Plans could not be aligned"
	}
	return "Invalid SQL Query"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

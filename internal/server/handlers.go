package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fileandclaim/fcidash/internal/model"
	"github.com/fileandclaim/fcidash/internal/pipeline"
	"github.com/fileandclaim/fcidash/internal/report"

	"github.com/go-chi/chi/v5"
)

// StageJSON is one stage bar.
type StageJSON struct {
	Stage       string  `json:"stage"`
	Count       int     `json:"count"`
	ValuedDeals int     `json:"valued_deals"`
	TotalValue  float64 `json:"total_value"`
	MeanValue   float64 `json:"mean_value"`
	MedianValue float64 `json:"median_value"`
}

// StagesResponse is served at /v1/stages.
type StagesResponse struct {
	Stages       []StageJSON `json:"stages"`
	Unrecognised int         `json:"unrecognised"`
}

// EngineerJSON is one engineer bar.
type EngineerJSON struct {
	Engineer string `json:"engineer"`
	Count    int    `json:"count"`
}

// EngineersResponse is served at /v1/engineers.
type EngineersResponse struct {
	Engineers []EngineerJSON `json:"engineers"`
}

// FieldResponse is a drill-down projection of one column.
type FieldResponse struct {
	Key    string   `json:"key"`
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

// StatusJSON is one slice of the status ring.
type StatusJSON struct {
	Status             string  `json:"status"`
	CompanyCount       int     `json:"company_count"`
	TotalInvoiceAmount float64 `json:"total_invoice_amount"`
}

// StatusesResponse is served at /v1/status.
type StatusesResponse struct {
	Statuses []StatusJSON `json:"statuses"`
	Unmapped int          `json:"unmapped"`
}

// CompanyJSON is one drill-down row; a missing amount encodes as null.
type CompanyJSON struct {
	Company       string   `json:"company"`
	InvoiceAmount *float64 `json:"invoice_amount"`
}

// CompaniesResponse is served at /v1/status/{display}.
type CompaniesResponse struct {
	Status    string        `json:"status"`
	Companies []CompanyJSON `json:"companies"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.info())
}

func (s *Service) handleStages(w http.ResponseWriter, r *http.Request) {
	res, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	counts := pipeline.CountStages(res.Deals)
	out := StagesResponse{
		Stages:       make([]StageJSON, len(counts)),
		Unrecognised: pipeline.UnrecognisedStages(res.Deals),
	}
	for i, c := range counts {
		out.Stages[i] = StageJSON(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleStage(w http.ResponseWriter, r *http.Request) {
	stage := pathParam(r, "stage")
	if !pipeline.IsKnownStage(stage) {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown stage %q", stage))
		return
	}
	field, err := queryField(r, pipeline.StageFields)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, FieldResponse{
		Key:    stage,
		Field:  field.String(),
		Values: pipeline.SelectStageField(res.Deals, stage, field),
	})
}

func (s *Service) handleEngineers(w http.ResponseWriter, r *http.Request) {
	res, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	counts := pipeline.CountByEngineer(res.Deals)
	out := EngineersResponse{Engineers: make([]EngineerJSON, len(counts))}
	for i, c := range counts {
		out.Engineers[i] = EngineerJSON(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleEngineer(w http.ResponseWriter, r *http.Request) {
	engineer := pathParam(r, "engineer")
	field, err := queryField(r, pipeline.EngineerFields)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, FieldResponse{
		Key:    engineer,
		Field:  field.String(),
		Values: pipeline.SelectEngineerField(res.Deals, engineer, field),
	})
}

func (s *Service) handleStatuses(w http.ResponseWriter, r *http.Request) {
	res, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	summary := pipeline.Summarize(res.Tracking)
	out := StatusesResponse{
		Statuses: make([]StatusJSON, len(summary)),
		Unmapped: pipeline.UnmappedStatuses(res.Tracking),
	}
	for i, st := range summary {
		out.Statuses[i] = StatusJSON{
			Status:             st.Display,
			CompanyCount:       st.CompanyCount,
			TotalInvoiceAmount: st.TotalInvoiceAmount,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	display, ok := pipeline.ResolveDisplayStatus(pathParam(r, "display"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown status %q", pathParam(r, "display")))
		return
	}

	res, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rows := pipeline.FilterByDisplayStatus(res.Tracking, display)
	out := CompaniesResponse{Status: display, Companies: make([]CompanyJSON, len(rows))}
	for i, row := range rows {
		out.Companies[i] = CompanyJSON(row)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleReport(w http.ResponseWriter, r *http.Request) {
	res, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(report.Build(res, time.Now()).HTML())
}

// pathParam returns the decoded URL parameter. chi matches against
// RawPath when the request has one and against the decoded Path
// otherwise, so only the former still needs unescaping.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}

// queryField reads ?field=, defaulting to the first allowed field.
func queryField(r *http.Request, allowed []model.DealField) (model.DealField, error) {
	q := r.URL.Query().Get("field")
	if q == "" {
		return allowed[0], nil
	}
	f, ok := pipeline.ParseDealField(q)
	if ok {
		for _, a := range allowed {
			if a == f {
				return f, nil
			}
		}
	}
	return 0, fmt.Errorf("unsupported field %q", q)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

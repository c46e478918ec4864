// Package httpadapter is the JSON transport over the usecase service.
// Handlers stay thin: decode, delegate, translate domain errors to
// status codes.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"svw.info/gridsolver/internal/domain"
	"svw.info/gridsolver/internal/metrics"
	"svw.info/gridsolver/internal/puzzle"
	"svw.info/gridsolver/internal/solver"
	"svw.info/gridsolver/internal/usecase"
)

type Handler struct {
	UC           *usecase.Service
	Metrics      *metrics.Metrics
	SolveTimeout time.Duration
}

func New(uc *usecase.Service, m *metrics.Metrics, solveTimeout time.Duration) *Handler {
	return &Handler{UC: uc, Metrics: m, SolveTimeout: solveTimeout}
}

// Router wires all endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Post("/solve", h.handleSolve)
		r.Post("/solve/batch", h.handleSolveBatch)
		r.Post("/validate", h.handleValidate)
		r.Post("/generate", h.handleGenerate)
		r.Post("/hint", h.handleHint)
		r.Post("/puzzles", h.handleSave)
		r.Get("/puzzles", h.handleList)
		r.Get("/puzzles/{id}", h.handleLoad)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResp struct {
	Error string `json:"error"`
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResp{Error: msg})
}

// solveStatus maps solve errors to an HTTP status and a metrics outcome.
func solveStatus(err error) (int, string) {
	var invalid *puzzle.InvalidPuzzleError
	switch {
	case errors.As(err, &invalid), errors.Is(err, domain.ErrOutOfRange):
		return http.StatusBadRequest, metrics.OutcomeInvalid
	case errors.Is(err, solver.ErrUnsatisfiable):
		return http.StatusUnprocessableEntity, metrics.OutcomeUnsatisfiable
	case errors.Is(err, solver.ErrIncomplete):
		return http.StatusServiceUnavailable, metrics.OutcomeIncomplete
	}
	return http.StatusInternalServerError, "error"
}

func (h *Handler) solveCtx(parent context.Context) (context.Context, context.CancelFunc) {
	if h.SolveTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.SolveTimeout)
}

// ---- Solve ----

type solveReq struct {
	Grid    domain.Grid    `json:"grid"`
	Variant domain.Variant `json:"variant,omitempty"`
}

type solveResp struct {
	Grid       string `json:"grid,omitempty"`
	DurationMs int64  `json:"durationMs"`
	Nodes      int    `json:"nodes"`
	Error      string `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	ctx, cancel := h.solveCtx(r.Context())
	defer cancel()

	out, st, err := h.UC.Solve(ctx, req.Grid.Clues(), req.Variant)
	h.Metrics.SolveSeconds.Observe(st.Duration.Seconds())
	h.Metrics.SolveNodes.Observe(float64(st.Nodes))
	if err != nil {
		status, outcome := solveStatus(err)
		h.Metrics.SolvesTotal.WithLabelValues(outcome).Inc()
		writeJSON(w, status, solveResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
		return
	}
	h.Metrics.SolvesTotal.WithLabelValues(metrics.OutcomeSolved).Inc()
	writeJSON(w, http.StatusOK, solveResp{Grid: out.String(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
}

// ---- Batch solve ----

type solveBatchReq struct {
	Grids   []domain.Grid  `json:"grids"`
	Variant domain.Variant `json:"variant,omitempty"`
}

type solveBatchResp struct {
	Results []solveResp `json:"results"`
}

const maxBatchSize = 256

// handleSolveBatch solves independent boards concurrently. Each solve
// owns its own state, so boards never share mutable data.
func (h *Handler) handleSolveBatch(w http.ResponseWriter, r *http.Request) {
	var req solveBatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	if len(req.Grids) == 0 {
		badRequest(w, "no grids supplied")
		return
	}
	if len(req.Grids) > maxBatchSize {
		badRequest(w, "too many grids in one batch")
		return
	}
	ctx, cancel := h.solveCtx(r.Context())
	defer cancel()

	results := make([]solveResp, len(req.Grids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, grid := range req.Grids {
		i, grid := i, grid
		g.Go(func() error {
			out, st, err := h.UC.Solve(ctx, grid.Clues(), req.Variant)
			res := solveResp{DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes}
			if err != nil {
				_, outcome := solveStatus(err)
				h.Metrics.SolvesTotal.WithLabelValues(outcome).Inc()
				res.Error = err.Error()
			} else {
				h.Metrics.SolvesTotal.WithLabelValues(metrics.OutcomeSolved).Inc()
				res.Grid = out.String()
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	writeJSON(w, http.StatusOK, solveBatchResp{Results: results})
}

// ---- Validate ----

type cellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type validateReq struct {
	Grid    domain.Grid    `json:"grid"`
	Variant domain.Variant `json:"variant,omitempty"`
}

type validateResp struct {
	OK        bool      `json:"ok"`
	Conflicts []cellRef `json:"conflicts,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	ok, conflicts, err := h.UC.Validate(r.Context(), req.Grid, req.Variant)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	resp := validateResp{OK: ok}
	for _, p := range conflicts {
		resp.Conflicts = append(resp.Conflicts, cellRef{Row: p.Row(), Col: p.Col()})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Generate ----

type generateReq struct {
	Seed       int64          `json:"seed,omitempty"`
	Difficulty string         `json:"difficulty,omitempty"`
	Variant    domain.Variant `json:"variant,omitempty"`
}

type generateResp struct {
	Puzzle     *domain.Puzzle `json:"puzzle,omitempty"`
	DurationMs int64          `json:"durationMs"`
	Nodes      int            `json:"nodes"`
	Error      string         `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ctx, cancel := h.solveCtx(r.Context())
	defer cancel()

	p, st, err := h.UC.Generate(ctx, seed, domain.ParseDifficulty(req.Difficulty), req.Variant)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, generateResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
		return
	}
	h.Metrics.PuzzlesGenerated.Inc()
	writeJSON(w, http.StatusOK, generateResp{Puzzle: p, DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
}

// ---- Hint ----

type hintReq struct {
	Grid    domain.Grid    `json:"grid"`
	Variant domain.Variant `json:"variant,omitempty"`
}

type hintResp struct {
	Found bool         `json:"found"`
	Hint  *domain.Hint `json:"hint,omitempty"`
	Error string       `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	hh, found, err := h.UC.Hint(r.Context(), req.Grid, req.Variant)
	if err != nil {
		status, _ := solveStatus(err)
		writeJSON(w, status, hintResp{Error: err.Error()})
		return
	}
	resp := hintResp{Found: found}
	if found {
		resp.Hint = &hh
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var p domain.Puzzle
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		writeJSON(w, http.StatusInternalServerError, saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: p.ID})
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.UC.Load(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ps, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, listResp{Puzzles: ps})
}

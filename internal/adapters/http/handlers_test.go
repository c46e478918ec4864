package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/gridsolver/internal/domain"
	"svw.info/gridsolver/internal/generator"
	"svw.info/gridsolver/internal/hint"
	"svw.info/gridsolver/internal/infrastructure/storage"
	"svw.info/gridsolver/internal/metrics"
	"svw.info/gridsolver/internal/solver"
	"svw.info/gridsolver/internal/usecase"
	"svw.info/gridsolver/internal/validator"
)

const (
	classicPuzzle = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	classicSolved = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

// metrics registration is global, so build the instruments once
var (
	testMetrics     *metrics.Metrics
	testMetricsOnce sync.Once
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	testMetricsOnce.Do(func() { testMetrics = metrics.New() })
	s := solver.NewConstraintSolver()
	uc := usecase.NewService(s, generator.NewUniqueGenerator(s), validator.New(), hint.NewSingles(), storage.NewFS(t.TempDir()))
	return New(uc, testMetrics, 10*time.Second)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSolveEndpoint(t *testing.T) {
	router := newTestHandler(t).Router()
	rec := postJSON(t, router, "/api/solve", map[string]string{"grid": classicPuzzle})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp solveResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, classicSolved, resp.Grid)
	assert.Empty(t, resp.Error)
}

func TestSolveEndpointInvalidPuzzle(t *testing.T) {
	router := newTestHandler(t).Router()
	// two 5s in row 0
	bad := "55" + strings.Repeat("0", 79)
	rec := postJSON(t, router, "/api/solve", map[string]string{"grid": bad})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp solveResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "invalid puzzle")
}

func TestSolveEndpointUnsatisfiable(t *testing.T) {
	router := newTestHandler(t).Router()
	unsat := "012346789" + "607891234" + strings.Repeat("0", 63)
	rec := postJSON(t, router, "/api/solve", map[string]string{"grid": unsat})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSolveEndpointBadJSON(t *testing.T) {
	router := newTestHandler(t).Router()
	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveBatchEndpoint(t *testing.T) {
	router := newTestHandler(t).Router()
	unsat := "012346789" + "607891234" + strings.Repeat("0", 63)
	rec := postJSON(t, router, "/api/solve/batch", map[string]any{
		"grids": []string{classicPuzzle, unsat},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp solveBatchResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, classicSolved, resp.Results[0].Grid)
	assert.NotEmpty(t, resp.Results[1].Error)
}

func TestSolveBatchEndpointEmpty(t *testing.T) {
	router := newTestHandler(t).Router()
	rec := postJSON(t, router, "/api/solve/batch", map[string]any{"grids": []string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateEndpoint(t *testing.T) {
	router := newTestHandler(t).Router()
	bad := "55" + strings.Repeat("0", 79)
	rec := postJSON(t, router, "/api/validate", map[string]string{"grid": bad})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp validateResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, []cellRef{{Row: 0, Col: 1}}, resp.Conflicts)
}

func TestHintEndpoint(t *testing.T) {
	router := newTestHandler(t).Router()
	rec := postJSON(t, router, "/api/hint", map[string]string{"grid": "034678912" + strings.Repeat("0", 72)})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp hintResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Found)
	assert.Equal(t, domain.Digit(5), resp.Hint.Digit)
}

func TestSaveLoadListEndpoints(t *testing.T) {
	router := newTestHandler(t).Router()

	rec := postJSON(t, router, "/api/puzzles", map[string]any{
		"givens":     classicPuzzle,
		"variant":    "standard",
		"difficulty": "hard",
		"name":       "round trip",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var saved saveResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID, "an ID is assigned on save")

	req := httptest.NewRequest(http.MethodGet, "/api/puzzles/"+saved.ID, nil)
	loadRec := httptest.NewRecorder()
	router.ServeHTTP(loadRec, req)
	require.Equal(t, http.StatusOK, loadRec.Code)
	var p domain.Puzzle
	require.NoError(t, json.Unmarshal(loadRec.Body.Bytes(), &p))
	assert.Equal(t, classicPuzzle, p.Givens.String())
	assert.Equal(t, "round trip", p.Name)

	req = httptest.NewRequest(http.MethodGet, "/api/puzzles", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, req)
	require.Equal(t, http.StatusOK, listRec.Code)
	var list listResp
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	require.Len(t, list.Puzzles, 1)
	assert.Equal(t, saved.ID, list.Puzzles[0].ID)
}

func TestLoadMissingPuzzle(t *testing.T) {
	router := newTestHandler(t).Router()
	req := httptest.NewRequest(http.MethodGet, "/api/puzzles/absent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestHandler(t).Router()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

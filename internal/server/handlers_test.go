package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAPI() http.Handler {
	api := NewWebAPI(zap.NewNop(), Config{
		MaxBodyBytes: 4096,
		Build:        BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"},
	})
	return api.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeReport(t *testing.T, rr *httptest.ResponseRecorder) output.Report {
	t.Helper()
	var report output.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	require.NotNil(t, report.Valuation)
	return report
}

func TestHealthAndVersion(t *testing.T) {
	h := newTestAPI()

	rr := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/v1/version", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc","date":"today"}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestListPresets(t *testing.T) {
	rr := do(t, newTestAPI(), http.MethodGet, "/api/v1/presets", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var presets []presetSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &presets))
	require.Len(t, presets, 5)
	assert.Equal(t, "Default", presets[0].Name)
	assert.Equal(t, "tpa", presets[2].Slug)
}

func TestGetPreset(t *testing.T) {
	h := newTestAPI()

	rr := do(t, h, http.MethodGet, "/api/v1/presets/stop-loss", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Stop-Loss (Risk guardrails)")

	rr = do(t, h, http.MethodGet, "/api/v1/presets/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown preset")
}

func TestEvaluate_Defaults(t *testing.T) {
	rr := do(t, newTestAPI(), http.MethodPost, "/api/v1/evaluate", `{}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	report := decodeReport(t, rr)
	require.Len(t, report.Valuation.Cases, 2)

	small := report.Valuation.Cases[0]
	assert.Equal(t, domain.SmallCaseLabel, small.Label)
	assert.Equal(t, "836.93", small.Result.NetPV.StringFixed(2))
	assert.Equal(t, "83.69", small.Result.NetPVPercentOfAllowed.Decimal.StringFixed(2))

	large := report.Valuation.Cases[1]
	assert.Equal(t, "8528.38", large.Result.NetPV.StringFixed(2))
}

func TestEvaluate_PresetWithOverrides(t *testing.T) {
	body := `{"preset":"Default","overrides":["discount_rate=0"],"small":1000,"cases":[]}`
	rr := do(t, newTestAPI(), http.MethodPost, "/api/v1/evaluate", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	report := decodeReport(t, rr)
	assert.Equal(t, "Default", report.PresetName)
	assert.True(t, report.Valuation.Assumptions.AnnualDiscountRate.IsZero())
	assert.True(t, report.Valuation.Cases[0].Result.NetPV.Equal(decimal.RequireFromString("847.60375")),
		"got %s", report.Valuation.Cases[0].Result.NetPV)
}

func TestEvaluate_PartialAssumptionsAndCases(t *testing.T) {
	body := `{
		"assumptions": {"plan_dso_days": 0},
		"cases": [
			{"label": "ED visit", "allowed_amount": 1000},
			{"label": "Empty", "allowed_amount": 0, "review_cost": 0}
		]
	}`
	rr := do(t, newTestAPI(), http.MethodPost, "/api/v1/evaluate", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	report := decodeReport(t, rr)
	assert.Equal(t, 0, report.Valuation.Assumptions.PlanCollectionDays)
	assert.Equal(t, 60, report.Valuation.Assumptions.PatientCollectionDays, "untouched keys keep their defaults")

	require.Len(t, report.Valuation.Cases, 2)
	ed := report.Valuation.Cases[0]
	assert.Equal(t, "ED visit", ed.Label)
	assert.Equal(t, "61", ed.ReviewCost.String(), "small rule picks the outpatient cost")
	assert.False(t, report.Valuation.Cases[1].Result.YieldDefined())
	assert.Contains(t, rr.Body.String(), `"net_pv_percent_of_allowed":null`)
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"malformed JSON", `{"preset":`, http.StatusBadRequest, "invalid JSON body"},
		{"unknown field", `{"color":"blue"}`, http.StatusBadRequest, "unknown field"},
		{"unknown preset", `{"preset":"Nope"}`, http.StatusNotFound, "unknown preset"},
		{"unknown override key", `{"overrides":["speed=1"]}`, http.StatusBadRequest, "unknown assumption"},
		{"out of range value", `{"assumptions":{"actuarial_value":1.5}}`, http.StatusUnprocessableEntity, "actuarial_value"},
		{"negative amount", `{"small":-1}`, http.StatusUnprocessableEntity, "amounts.small"},
		{"missing case label", `{"cases":[{"allowed_amount":100}]}`, http.StatusBadRequest, "label is required"},
		{"amounts with explicit cases", `{"small":500,"cases":[{"label":"ED","allowed_amount":100}]}`, http.StatusBadRequest, "cannot be combined with cases"},
		{"unknown assumption key", `{"assumptions":{"discount":0}}`, http.StatusBadRequest, "unknown field \"discount\""},
		{"unknown review cost key", `{"review_costs":{"outpatent":70}}`, http.StatusBadRequest, "unknown field \"outpatent\""},
	}

	h := newTestAPI()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/v1/evaluate", tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.want)
		})
	}
}

func TestEvaluate_InvalidParameterReportsField(t *testing.T) {
	rr := do(t, newTestAPI(), http.MethodPost, "/api/v1/evaluate", `{"assumptions":{"discount_rate":-0.1}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, domain.KeyAnnualDiscountRate, resp.Field)
}

func TestEvaluate_BodyTooLarge(t *testing.T) {
	body := `{"overrides":["` + strings.Repeat("x", 8192) + `"]}`
	rr := do(t, newTestAPI(), http.MethodPost, "/api/v1/evaluate", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestSensitivity(t *testing.T) {
	body := `{"parameter":"discount_rate","min":0,"max":0.16,"steps":5}`
	rr := do(t, newTestAPI(), http.MethodPost, "/api/v1/sensitivity", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var analysis domain.ParameterSensitivityAnalysis
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &analysis))
	assert.Equal(t, domain.KeyAnnualDiscountRate, analysis.Parameter.Name)
	require.Len(t, analysis.Points, 5)
	assert.True(t, analysis.Points[0].ParameterValue.IsZero())
	require.Len(t, analysis.Points[0].Cases, 2)
	// a lower discount rate is worth more
	assert.True(t, analysis.Points[0].Cases[0].NetPV.GreaterThan(analysis.Points[4].Cases[0].NetPV))
}

func TestSensitivity_BandCeilings(t *testing.T) {
	h := newTestAPI()
	for _, key := range []string{domain.KeySmallBandCeiling, domain.KeyMediumBandCeiling} {
		t.Run(key, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/v1/sensitivity", `{"parameter":"`+key+`","steps":5}`)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var analysis domain.ParameterSensitivityAnalysis
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &analysis))
			assert.Len(t, analysis.Points, 5)
		})
	}

	// only a max given: the min falls back to the narrowed range
	rr := do(t, h, http.MethodPost, "/api/v1/sensitivity", `{"parameter":"medium_band_ceiling","max":2000,"steps":3}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestSensitivity_Errors(t *testing.T) {
	h := newTestAPI()

	rr := do(t, h, http.MethodPost, "/api/v1/sensitivity", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/v1/sensitivity", `{"parameter":"speed"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/v1/sensitivity", `{"parameter":"discount_rate","steps":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestStatusFor_Default(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/valentinromain/astrosiderale/internal/domain/chart"
	"github.com/valentinromain/astrosiderale/internal/infra/chartcache"
	"github.com/valentinromain/astrosiderale/internal/infra/chartrepo"
	"github.com/valentinromain/astrosiderale/internal/infra/config"
	"github.com/valentinromain/astrosiderale/internal/infra/ephemeris"
	apperrors "github.com/valentinromain/astrosiderale/pkg/errors"
)

const validBirthChart = `{"year":1990,"month":5,"day":15,"hours":14,"minutes":30,"seconds":0,"latitude":40.7128,"longitude":-74.006,"timezone":-4,"ayanamsha":"lahiri"}`

func TestRouter_BirthChartSuccess(t *testing.T) {
	planets := []chart.PlanetResult{
		{Name: "Sun", Degrees: 0.94, Sign: "Taurus", House: 9, Retrograde: false},
		{Name: "Mercury", Degrees: 14.26, Sign: "Aries", House: 8, Retrograde: true},
	}
	svc := &stubChartService{
		computeFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			require.Equal(t, chart.Request{
				Year: 1990, Month: 5, Day: 15, Hours: 14, Minutes: 30,
				Latitude: 40.7128, Longitude: -74.006, Timezone: -4, Ayanamsha: "lahiri",
			}, req)
			return chart.Response{Planets: planets}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/birth-chart", validBirthChart, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.JSONEq(t, "null", string(got["chart_url"]))

	var decoded []chart.PlanetResult
	require.NoError(t, json.Unmarshal(got["planets"], &decoded))
	require.Equal(t, planets, decoded)
}

func TestRouter_BirthChartWithChartURL(t *testing.T) {
	url := "https://charts.example.test/charts/abc.json"
	svc := &stubChartService{
		computeFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			return chart.Response{Planets: []chart.PlanetResult{}, ChartURL: &url}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/birth-chart", validBirthChart, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"planets":[],"chart_url":"https://charts.example.test/charts/abc.json"}`, recorder.Body.String())
}

func TestRouter_BirthChartAcceptsZeroValuesAndMissingOptionals(t *testing.T) {
	svc := &stubChartService{
		computeFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			require.Zero(t, req.Hours)
			require.Zero(t, req.Latitude)
			require.Zero(t, req.Seconds)
			require.Empty(t, req.Ayanamsha)
			return chart.Response{Planets: []chart.PlanetResult{}}, nil
		},
	}

	body := `{"year":2000,"month":1,"day":1,"hours":0,"minutes":0,"latitude":0,"longitude":0,"timezone":0}`
	recorder := performRequest(http.MethodPost, "/api/birth-chart", body, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_BirthChartInvalidJSON(t *testing.T) {
	svc := &stubChartService{}

	recorder := performRequest(http.MethodPost, "/api/birth-chart", `{"year":"nineteen"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
	require.Zero(t, svc.computeCalls)
}

func TestRouter_BirthChartMissingField(t *testing.T) {
	svc := &stubChartService{}

	body := `{"year":1990,"month":5,"day":15,"hours":14,"minutes":30,"latitude":40.7,"longitude":-74}`
	recorder := performRequest(http.MethodPost, "/api/birth-chart", body, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "Timezone")
	require.Zero(t, svc.computeCalls)
}

func TestRouter_BirthChartInvalidInput(t *testing.T) {
	svc := &stubChartService{
		computeFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			return chart.Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "month must be between 1 and 12, got 15", nil)
		},
	}

	body := `{"year":1990,"month":15,"day":15,"hours":14,"minutes":30,"latitude":40.7,"longitude":-74,"timezone":-4}`
	recorder := performRequest(http.MethodPost, "/api/birth-chart", body, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "month must be between 1 and 12")
}

func newChartService() chart.Service {
	logger := newTestLogger()
	provider := ephemeris.NewProvider()
	engine := chart.NewEngine(provider, provider, chart.EngineConfig{}, logger)
	return chart.NewService(chart.Config{HistoryLimit: 10, CacheTTL: time.Hour}, engine,
		chartrepo.NewMemoryRepository(10), chartcache.NewMemoryStore(), nil, logger)
}

func TestRouter_BirthChartEndToEnd(t *testing.T) {
	server := newRouterUnderTest(t, newChartService())

	recorder := performRequest(http.MethodPost, "/api/birth-chart", validBirthChart, server)
	require.Equal(t, http.StatusOK, recorder.Code)
	var resp chart.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Planets, 11)
	require.Nil(t, resp.ChartURL)

	body := `{"year":1990,"month":15,"day":15,"hours":14,"minutes":30,"latitude":40.7,"longitude":-74,"timezone":-4}`
	recorder = performRequest(http.MethodPost, "/api/birth-chart", body, server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "month")

	polar := `{"year":1990,"month":5,"day":15,"hours":14,"minutes":30,"latitude":80,"longitude":-74,"timezone":-4}`
	recorder = performRequest(http.MethodPost, "/api/birth-chart", polar, server)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, "chart_failed", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])

	recorder = performRequest(http.MethodGet, "/api/history", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	var history struct {
		History []chart.HistoryEntry `json:"history"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &history))
	require.Len(t, history.History, 1)
}

func TestRouter_BirthChartComputationFailure(t *testing.T) {
	svc := &stubChartService{
		computeFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			return chart.Response{}, apperrors.Wrap(apperrors.CodeChart, "chart computation failed", context.DeadlineExceeded)
		},
	}

	recorder := performRequest(http.MethodPost, "/api/birth-chart", validBirthChart, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "chart_failed", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "chart computation failed")
}

func TestRouter_Root(t *testing.T) {
	recorder := performRequest(http.MethodGet, "/api/", "", newRouterUnderTest(t, &stubChartService{}))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"message":"Sidereal Astrology API is running!"}`, recorder.Body.String())
}

func TestRouter_History(t *testing.T) {
	entries := []chart.HistoryEntry{{
		ID:        "c0ffee",
		Request:   chart.Request{Year: 1990, Month: 5, Day: 15},
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Planets:   []chart.PlanetResult{{Name: "Sun", Sign: "Taurus", House: 9}},
	}}
	svc := &stubChartService{
		historyFn: func(ctx context.Context, limit int) ([]chart.HistoryEntry, error) {
			require.Equal(t, 5, limit)
			return entries, nil
		},
	}

	recorder := performRequest(http.MethodGet, "/api/history?limit=5", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		History []chart.HistoryEntry `json:"history"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, entries, got.History)
}

func TestRouter_HistoryDefaultLimit(t *testing.T) {
	svc := &stubChartService{
		historyFn: func(ctx context.Context, limit int) ([]chart.HistoryEntry, error) {
			require.Zero(t, limit)
			return []chart.HistoryEntry{}, nil
		},
	}

	recorder := performRequest(http.MethodGet, "/api/history", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"history":[]}`, recorder.Body.String())
}

func TestRouter_HistoryInvalidLimit(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		recorder := performRequest(http.MethodGet, "/api/history?limit="+raw, "", newRouterUnderTest(t, &stubChartService{}))
		require.Equal(t, http.StatusBadRequest, recorder.Code, raw)

		errBody := decodeErrorBody(t, recorder.Body.Bytes())
		require.Equal(t, "invalid_request", errBody["error"]["code"])
	}
}

func TestRouter_HistoryFailure(t *testing.T) {
	svc := &stubChartService{
		historyFn: func(ctx context.Context, limit int) ([]chart.HistoryEntry, error) {
			return nil, apperrors.Wrap(apperrors.CodeHistory, "failed to load chart history", context.Canceled)
		},
	}

	recorder := performRequest(http.MethodGet, "/api/history", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, "history_failed", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/birth-chart", nil)
	req.Header.Set("Origin", "https://app.example.test")
	rec := httptest.NewRecorder()
	newRouterUnderTest(t, &stubChartService{}).Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRouter_CORSAllowList(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.AllowedOrigins = []string{"https://astro.example.test", "https://admin.example.test"}
	server := NewRouter(cfg, NewHandler(&stubChartService{}, newTestLogger()))

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "https://admin.example.test")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "https://admin.example.test", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 2}
	server := NewRouter(cfg, NewHandler(&stubChartService{}, newTestLogger()))

	for i := 0; i < 2; i++ {
		recorder := performRequest(http.MethodGet, "/api/", "", server)
		require.Equal(t, http.StatusOK, recorder.Code)
	}
	recorder := performRequest(http.MethodGet, "/api/", "", server)
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestIPRateLimiterRefills(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 1}, func() time.Time { return now })

	require.True(t, limiter.allow("10.0.0.1"))
	require.False(t, limiter.allow("10.0.0.1"))
	require.True(t, limiter.allow("10.0.0.2"))

	now = now.Add(2 * time.Second)
	require.True(t, limiter.allow("10.0.0.1"))
	require.False(t, limiter.allow("10.0.0.1"))
}

func TestIPRateLimiterSweepsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 5}, func() time.Time { return now })

	require.True(t, limiter.allow("10.0.0.1"))
	now = now.Add(10 * time.Minute)
	require.True(t, limiter.allow("10.0.0.2"))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	require.NotContains(t, limiter.visitors, "10.0.0.1")
	require.Contains(t, limiter.visitors, "10.0.0.2")
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

func newRouterUnderTest(t *testing.T, svc chart.Service) *http.Server {
	t.Helper()
	return NewRouter(testConfig(), NewHandler(svc, newTestLogger()))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubChartService struct {
	computeFn    func(ctx context.Context, req chart.Request) (chart.Response, error)
	historyFn    func(ctx context.Context, limit int) ([]chart.HistoryEntry, error)
	computeCalls int
}

func (s *stubChartService) Compute(ctx context.Context, req chart.Request) (chart.Response, error) {
	s.computeCalls++
	if s.computeFn != nil {
		return s.computeFn(ctx, req)
	}
	return chart.Response{Planets: []chart.PlanetResult{}}, nil
}

func (s *stubChartService) History(ctx context.Context, limit int) ([]chart.HistoryEntry, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, limit)
	}
	return []chart.HistoryEntry{}, nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

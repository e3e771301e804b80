package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"momentumRider/internal/api/http/controllers/cache"
	"momentumRider/internal/api/http/controllers/momentum"
	"momentumRider/internal/api/http/controllers/system"
	"momentumRider/internal/api/http/pipeline"
	"momentumRider/internal/domain"
	"momentumRider/internal/mocks"
	"momentumRider/internal/ratelimit"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var computedAt = time.Date(2024, 6, 28, 12, 0, 0, 0, time.UTC)

func spyScore() domain.MomentumScore {
	return domain.MomentumScore{
		Ticker: "SPY",
		HorizonReturns: map[string]decimal.Decimal{
			"1w":  decimal.RequireFromString("1.2"),
			"4w":  decimal.RequireFromString("2.44"),
			"12w": decimal.RequireFromString("5"),
		},
		CompositeScore: decimal.RequireFromString("2.88"),
		ComputedAt:     computedAt,
	}
}

type testServer struct {
	uc       *mocks.MockIMomentumUseCase
	registry *mocks.MockIInstrumentRegistry
	handler  http.Handler
}

func newTestServer(t *testing.T, env string, compute ratelimit.Quota) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)
	ts := &testServer{
		uc:       mocks.NewMockIMomentumUseCase(ctrl),
		registry: mocks.NewMockIInstrumentRegistry(ctrl),
	}
	log := newTestLogger()
	limiter := ratelimit.New(ratelimit.Quota{Limit: 100, Window: time.Minute}, map[ratelimit.Class]ratelimit.Quota{
		ratelimit.ClassRead:    {Limit: 100, Window: time.Minute},
		ratelimit.ClassCompute: compute,
	}, log)
	resp := pipeline.NewResponder(log, env == "development")

	srv := NewServer(ServerConfig{Env: env, AllowOrigins: "http://localhost:3000"}, log)
	srv.AddController(
		system.New(ts.registry, log),
		momentum.New(ts.uc, limiter, resp, log),
		cache.New(ts.uc, limiter, resp, log),
	)
	ts.handler = srv.Handler()
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pipeline.ErrorResponse {
	t.Helper()
	var resp pipeline.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

var generous = ratelimit.Quota{Limit: 100, Window: time.Minute}

func TestGetMomentum_OK(t *testing.T) {
	ts := newTestServer(t, "production", generous)
	ts.uc.EXPECT().Score(gomock.Any(), domain.ScoreQuery{Ticker: "SPY"}).Return(spyScore(), nil)

	w := ts.do(http.MethodGet, "/api/momentum/SPY", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"ticker": "SPY",
		"horizonReturns": {"1w": 1.20, "4w": 2.44, "12w": 5.00},
		"compositeScore": 2.88,
		"approximate": false,
		"computedAt": "2024-06-28T12:00:00Z"
	}`, w.Body.String())
	assert.Contains(t, w.Body.String(), `"12w":5.00`, "два знака после запятой")
}

func TestGetMomentum_QueryFlags(t *testing.T) {
	ts := newTestServer(t, "production", generous)
	named := spyScore().WithName("SPDR S&P 500 ETF Trust")
	ts.uc.EXPECT().Score(gomock.Any(), domain.ScoreQuery{Ticker: "SPY", IncludeName: true, Refresh: true}).Return(named, nil)

	w := ts.do(http.MethodGet, "/api/momentum/SPY?includeName=true&refresh=1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SPDR S&P 500 ETF Trust", body["name"])
}

func TestGetMomentum_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		field  string
		msg    string
	}{
		{"плохой тикер", "/api/momentum/$$$", "ticker", `failed rule "ticker"`},
		{"не булево", "/api/momentum/SPY?includeName=maybe", "includeName", "must be a boolean"},
		{"лишний параметр", "/api/momentum/SPY?foo=bar", "foo", "unknown field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, "production", generous)

			w := ts.do(http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, domain.CodeValidation, resp.Error)
			assert.Equal(t, tt.msg, resp.Fields[tt.field])
		})
	}
}

func TestGetMomentum_RateLimited(t *testing.T) {
	ts := newTestServer(t, "production", ratelimit.Quota{Limit: 2, Window: time.Minute})
	ts.uc.EXPECT().Score(gomock.Any(), gomock.Any()).Return(spyScore(), nil).Times(2)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/momentum/SPY", "").Code)
	}

	w := ts.do(http.MethodGet, "/api/momentum/SPY", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, domain.CodeRateLimitExceeded, decodeError(t, w).Error)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

// невалидные запросы отклоняются до допуска и не тратят квоту
func TestGetMomentum_ValidationBeforeAdmission(t *testing.T) {
	ts := newTestServer(t, "production", ratelimit.Quota{Limit: 1, Window: time.Minute})
	ts.uc.EXPECT().Score(gomock.Any(), gomock.Any()).Return(spyScore(), nil).Times(1)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/momentum/SPY?x=1", "").Code)
	}
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/momentum/SPY", "").Code)
}

func TestGetMomentum_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name: "неизвестный тикер", env: "production",
			err:    domain.NewNotFoundError("ticker", "ZZZ"),
			status: http.StatusNotFound, code: domain.CodeNotFound, message: `ticker "ZZZ" not found`,
		},
		{
			name: "внутренняя скрыта", env: "production",
			err:    domain.NewInternalError("momentum computation failed", errors.New("yahoo: status 503")),
			status: http.StatusInternalServerError, code: domain.CodeInternal, message: "internal server error",
		},
		{
			name: "посторонняя ошибка", env: "production",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError, code: domain.CodeInternal, message: "internal server error",
		},
		{
			name: "внутренняя в development", env: "development",
			err:    domain.NewInternalError("momentum computation failed", errors.New("yahoo: status 503")),
			status: http.StatusInternalServerError, code: domain.CodeInternal,
			message: "ERR_INTERNAL: momentum computation failed: yahoo: status 503",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.env, generous)
			ts.uc.EXPECT().Score(gomock.Any(), gomock.Any()).Return(domain.MomentumScore{}, tt.err)

			w := ts.do(http.MethodGet, "/api/momentum/ZZZ", "")
			require.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.code, resp.Error)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestPostMomentum(t *testing.T) {
	t.Run("тикер из тела важнее query", func(t *testing.T) {
		ts := newTestServer(t, "production", generous)
		ts.uc.EXPECT().Score(gomock.Any(), domain.ScoreQuery{Ticker: "QQQ", IncludeName: true}).Return(spyScore(), nil)

		w := ts.do(http.MethodPost, "/api/momentum?ticker=SPY", `{"ticker":"QQQ","includeName":true}`)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("тикер только в query", func(t *testing.T) {
		ts := newTestServer(t, "production", generous)
		ts.uc.EXPECT().Score(gomock.Any(), domain.ScoreQuery{Ticker: "SPY"}).Return(spyScore(), nil)

		w := ts.do(http.MethodPost, "/api/momentum?ticker=SPY", "")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("без тикера", func(t *testing.T) {
		ts := newTestServer(t, "production", generous)

		w := ts.do(http.MethodPost, "/api/momentum", `{}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "is required", decodeError(t, w).Fields["ticker"])
	})

	t.Run("битый JSON", func(t *testing.T) {
		ts := newTestServer(t, "production", generous)

		w := ts.do(http.MethodPost, "/api/momentum", `{"ticker":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "must be a JSON object", decodeError(t, w).Fields["body"])
	})

	t.Run("поля клиента не перекрывают код и сообщение", func(t *testing.T) {
		ts := newTestServer(t, "production", generous)

		w := ts.do(http.MethodPost, "/api/momentum", `{"ticker":"SPY","message":"hi","error":"x"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, domain.CodeValidation, resp.Error)
		assert.Equal(t, "request validation failed", resp.Message)
		assert.Equal(t, map[string]string{"message": "unknown field", "error": "unknown field"}, resp.Fields)
	})

	t.Run("тикер не строка", func(t *testing.T) {
		ts := newTestServer(t, "production", generous)

		w := ts.do(http.MethodPost, "/api/momentum", `{"ticker":42}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "must be a string", decodeError(t, w).Fields["ticker"])
	})
}

func TestCacheHealth(t *testing.T) {
	ts := newTestServer(t, "production", generous)
	ts.uc.EXPECT().CacheHealth(gomock.Any()).Return(domain.CacheHealth{
		Status: domain.CacheHealthy, Tier: domain.TierFallback, Configured: false, CheckedAt: computedAt,
	})

	w := ts.do(http.MethodGet, "/api/cache/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","tier":"fallback","configured":false,"checkedAt":"2024-06-28T12:00:00Z"}`, w.Body.String())
}

func TestCacheWarm(t *testing.T) {
	ts := newTestServer(t, "production", generous)
	ts.uc.EXPECT().Warm(gomock.Any()).Return(4, nil)

	w := ts.do(http.MethodPost, "/api/cache/warm", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"warmed":4}`, w.Body.String())
}

func TestSystemRoutes(t *testing.T) {
	ts := newTestServer(t, "production", generous)

	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/liveness", "").Code)

	ts.registry.EXPECT().Ping(gomock.Any()).Return(nil)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/readyness", "").Code)

	ts.registry.EXPECT().Ping(gomock.Any()).Return(errors.New("pg down"))
	assert.Equal(t, http.StatusServiceUnavailable, ts.do(http.MethodGet, "/readyness", "").Code)

	w := ts.do(http.MethodGet, "/liveness", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/liveness", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = ts.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, "production", generous)

	req := httptest.NewRequest(http.MethodOptions, "/api/momentum", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

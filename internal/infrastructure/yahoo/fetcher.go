// Package yahoo: недельные цены закрытия из публичного chart API Yahoo Finance.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"momentumRider/internal/domain"
	"momentumRider/internal/pkg/httputil"
	"momentumRider/internal/ports"
)

var _ ports.IPriceFetcher = (*Fetcher)(nil)

// Config: настройки источника цен. Переменные: MOMENTUM_PRICES_*.
type Config struct {
	BaseURL           string               `envconfig:"BASE_URL" default:"https://query1.finance.yahoo.com"`
	Timeout           time.Duration        `envconfig:"TIMEOUT" default:"10s"`
	RequestsPerSecond float64              `envconfig:"RPS" default:"2"`
	Burst             int                  `envconfig:"BURST" default:"2"`
	UserAgent         string               `envconfig:"USER_AGENT" default:"Mozilla/5.0"`
	Retry             httputil.RetryConfig `envconfig:"RETRY"`
}

// Fetcher реализует ports.IPriceFetcher. Исходящие запросы ограничены по частоте.
type Fetcher struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// New создаёт источник цен.
func New(cfg Config, log *slog.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &Fetcher{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		log:     log,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []decimal.NullDecimal `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// rangeFor подбирает диапазон запроса с запасом на праздники и пропуски.
func rangeFor(weeks int) string {
	switch {
	case weeks <= 20:
		return "6mo"
	case weeks <= 48:
		return "1y"
	case weeks <= 100:
		return "2y"
	default:
		return "5y"
	}
}

// FetchWeekly возвращает недельные точки по возрастанию даты за диапазон, покрывающий не меньше weeks
// недель. Ряд не обрезается: Yahoo может добавить бар текущей неполной недели, и обрезка по числу
// точек сдвинула бы самую раннюю дату. Неизвестный тикер: NotFoundError.
func (f *Fetcher) FetchWeekly(ctx context.Context, ticker string, weeks int) (domain.WeeklyPriceSeries, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("yahoo throttle: %w", err)
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1wk&range=%s",
		f.cfg.BaseURL, url.PathEscape(ticker), rangeFor(weeks))

	resp, err := httputil.Do(ctx, f.client, f.cfg.Retry, f.log, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", f.cfg.UserAgent)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.NewNotFoundError("ticker", ticker)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %.200s", resp.StatusCode, string(body))
	}

	series, err := parseChart(body)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	f.log.Debug("weekly prices fetched", "ticker", ticker, "points", len(series))
	return series, nil
}

func parseChart(body []byte) (domain.WeeklyPriceSeries, error) {
	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no data returned")
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	series := make(domain.WeeklyPriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || !closes[i].Valid || !closes[i].Decimal.IsPositive() {
			continue // пустые бары (праздники, торги ещё не начались)
		}
		t := time.Unix(ts, 0).UTC()
		series = append(series, domain.PricePoint{
			Date:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
			Close: closes[i].Decimal,
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "smartfinance/internal/errors"
)

const defaultTimeout = 30 * time.Second

// HTTPClient is the production Client implementation over the provider's
// REST endpoints.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
}

// NewHTTPClient creates a market-data client with a bounded request timeout.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// quoteResponse is the provider's quote envelope.
type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string  `json:"symbol"`
			ShortName                  string  `json:"shortName"`
			LongName                   string  `json:"longName"`
			RegularMarketPrice         float64 `json:"regularMarketPrice"`
			RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
		} `json:"result"`
		Error *json.RawMessage `json:"error"`
	} `json:"quoteResponse"`
}

// chartResponse is the provider's historical chart envelope. Close values
// are pointers because the series may contain gaps.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// moversResponse is the provider's gainers/losers envelope.
type moversResponse struct {
	TopGainers []moverEntry `json:"top_gainers"`
	TopLosers  []moverEntry `json:"top_losers"`
	MostActive []moverEntry `json:"most_actively_traded"`
}

type moverEntry struct {
	Ticker           string  `json:"ticker"`
	Company          string  `json:"company"`
	Price            float64 `json:"price"`
	ChangePercentage float64 `json:"change_percentage"`
}

func (m moverEntry) toQuote() Quote {
	name := m.Company
	if name == "" {
		name = m.Ticker
	}
	return Quote{
		Symbol:        m.Ticker,
		Name:          name,
		Price:         m.Price,
		PercentChange: m.ChangePercentage,
	}
}

// trendingResponse is the provider's trending-tickers envelope.
type trendingResponse struct {
	Finance struct {
		Result []struct {
			Quotes []struct {
				Symbol string `json:"symbol"`
			} `json:"quotes"`
		} `json:"result"`
	} `json:"finance"`
}

// Quote fetches the current snapshot for one symbol.
func (c *HTTPClient) Quote(ctx context.Context, symbol string) (*Quote, error) {
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}

	endpoint := "/v6/finance/quote?symbols=" + url.QueryEscape(symbol)
	var resp quoteResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	if len(resp.QuoteResponse.Result) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrSymbolNotFound, "no quote for "+symbol)
	}

	r := resp.QuoteResponse.Result[0]
	name := r.ShortName
	if name == "" {
		name = r.LongName
	}
	if name == "" {
		name = r.Symbol
	}
	return &Quote{
		Symbol:        r.Symbol,
		Name:          name,
		Price:         r.RegularMarketPrice,
		PercentChange: r.RegularMarketChangePercent,
	}, nil
}

// HistoricalCloses fetches the close-price series for a symbol. Gaps in the
// series are dropped, so the result may be shorter than the range implies.
func (c *HTTPClient) HistoricalCloses(ctx context.Context, symbol, priceRange, interval string) ([]float64, error) {
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}

	endpoint := fmt.Sprintf("/v8/finance/chart/%s?range=%s&interval=%s",
		url.PathEscape(symbol), url.QueryEscape(priceRange), url.QueryEscape(interval))
	var resp chartResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, apperrors.WithMessage(apperrors.ErrSymbolNotFound,
			fmt.Sprintf("chart error for %s: %s", symbol, resp.Chart.Error.Description))
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrSymbolNotFound, "no chart data for "+symbol)
	}

	raw := resp.Chart.Result[0].Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, p := range raw {
		if p != nil {
			closes = append(closes, *p)
		}
	}
	return closes, nil
}

// TopMovers fetches the gainers/losers/most-active feed.
func (c *HTTPClient) TopMovers(ctx context.Context) (*MoversFeed, error) {
	var resp moversResponse
	if err := c.getJSON(ctx, "/v1/finance/screener/movers", &resp); err != nil {
		return nil, err
	}

	feed := &MoversFeed{}
	for _, e := range resp.TopGainers {
		feed.TopGainers = append(feed.TopGainers, e.toQuote())
	}
	for _, e := range resp.TopLosers {
		feed.TopLosers = append(feed.TopLosers, e.toQuote())
	}
	for _, e := range resp.MostActive {
		feed.MostActive = append(feed.MostActive, e.toQuote())
	}
	return feed, nil
}

// TrendingSymbols fetches the trending tickers for a region.
func (c *HTTPClient) TrendingSymbols(ctx context.Context, region string) ([]string, error) {
	endpoint := "/v1/finance/trending/" + url.PathEscape(region)
	var resp trendingResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	var symbols []string
	for _, result := range resp.Finance.Result {
		for _, q := range result.Quotes {
			symbols = append(symbols, q.Symbol)
		}
	}
	return symbols, nil
}

// getJSON performs a GET against the provider and decodes the JSON body.
func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMarketDataUnavailable, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMarketDataUnavailable, fmt.Errorf("http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if err := statusError(resp.StatusCode); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrMarketDataUnavailable, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// statusError maps provider HTTP status codes onto the upstream error taxonomy.
func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return apperrors.WithMessage(apperrors.ErrMarketDataUnavailable, "market data authentication failed")
	case code == http.StatusNotFound:
		return apperrors.ErrSymbolNotFound
	case code == http.StatusTooManyRequests:
		return apperrors.ErrRateLimited
	default:
		return apperrors.WithMessage(apperrors.ErrMarketDataUnavailable,
			fmt.Sprintf("market data request failed with status %d", code))
	}
}

package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartfinance/internal/testutil"
)

func newTestClient(handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewHTTPClient(server.URL, "test-key", 0), server
}

func TestQuote(t *testing.T) {
	t.Run("parses_quote_response", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("x-api-key"); got != "test-key" {
				t.Errorf("expected api key header, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"quoteResponse":{"result":[
				{"symbol":"AAPL","shortName":"Apple Inc.","regularMarketPrice":184.2,"regularMarketChangePercent":1.3}
			],"error":null}}`))
		})
		defer server.Close()

		quote, err := client.Quote(context.Background(), "AAPL")
		testutil.AssertNoError(t, err)

		if quote.Symbol != "AAPL" || quote.Name != "Apple Inc." {
			t.Errorf("unexpected quote identity: %+v", quote)
		}
		if quote.Price != 184.2 || quote.PercentChange != 1.3 {
			t.Errorf("unexpected quote numbers: %+v", quote)
		}
	})

	t.Run("empty_result_is_symbol_not_found", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"quoteResponse":{"result":[],"error":null}}`))
		})
		defer server.Close()

		_, err := client.Quote(context.Background(), "NOPE")
		testutil.AssertAppError(t, err, "SYMBOL_NOT_FOUND")
	})

	t.Run("blank_symbol", func(t *testing.T) {
		client := NewHTTPClient("http://unused", "", 0)
		_, err := client.Quote(context.Background(), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestHistoricalCloses(t *testing.T) {
	t.Run("drops_gaps_in_the_series", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"chart":{"result":[
				{"indicators":{"quote":[{"close":[100.5,null,101.0,102.25]}]}}
			],"error":null}}`))
		})
		defer server.Close()

		closes, err := client.HistoricalCloses(context.Background(), "AAPL", "1mo", "1d")
		testutil.AssertNoError(t, err)

		want := []float64{100.5, 101.0, 102.25}
		if len(closes) != len(want) {
			t.Fatalf("expected %d closes, got %d", len(want), len(closes))
		}
		for i := range want {
			if closes[i] != want[i] {
				t.Errorf("closes[%d] = %v, want %v", i, closes[i], want[i])
			}
		}
	})

	t.Run("chart_error_is_symbol_not_found", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
		})
		defer server.Close()

		_, err := client.HistoricalCloses(context.Background(), "NOPE", "1mo", "1d")
		testutil.AssertAppError(t, err, "SYMBOL_NOT_FOUND")
	})
}

func TestTopMovers(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/finance/screener/movers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"top_gainers":[{"ticker":"UP","company":"Up Corp","price":12.5,"change_percentage":8.1}],
			"top_losers":[{"ticker":"DN","company":"","price":3.1,"change_percentage":-6.2}],
			"most_actively_traded":[{"ticker":"HOT","company":"Hot Inc","price":55.0,"change_percentage":0.4}]
		}`))
	})
	defer server.Close()

	feed, err := client.TopMovers(context.Background())
	testutil.AssertNoError(t, err)

	if len(feed.TopGainers) != 1 || len(feed.TopLosers) != 1 || len(feed.MostActive) != 1 {
		t.Fatalf("unexpected feed sizes: %+v", feed)
	}
	if feed.TopGainers[0].Name != "Up Corp" {
		t.Errorf("expected company name, got %q", feed.TopGainers[0].Name)
	}
	// A blank company name falls back to the ticker.
	if feed.TopLosers[0].Name != "DN" {
		t.Errorf("expected ticker fallback, got %q", feed.TopLosers[0].Name)
	}
}

func TestTrendingSymbols(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/finance/trending/US" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"finance":{"result":[{"quotes":[{"symbol":"NVDA"},{"symbol":"TSLA"}]}]}}`))
	})
	defer server.Close()

	symbols, err := client.TrendingSymbols(context.Background(), "US")
	testutil.AssertNoError(t, err)

	if len(symbols) != 2 || symbols[0] != "NVDA" || symbols[1] != "TSLA" {
		t.Errorf("unexpected symbols: %v", symbols)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusUnauthorized, "MARKET_DATA_UNAVAILABLE"},
		{http.StatusForbidden, "MARKET_DATA_UNAVAILABLE"},
		{http.StatusNotFound, "SYMBOL_NOT_FOUND"},
		{http.StatusTooManyRequests, "RATE_LIMITED"},
		{http.StatusInternalServerError, "MARKET_DATA_UNAVAILABLE"},
	}

	for _, tc := range cases {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})

		_, err := client.TopMovers(context.Background())
		testutil.AssertAppError(t, err, tc.code)
		server.Close()
	}
}

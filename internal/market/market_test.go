package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartBody(close float64, volume int64) string {
	return fmt.Sprintf(`{"chart":{"result":[{"indicators":{"quote":[{"close":[%v],"volume":[%d]}]}}],"error":null}}`, close, volume)
}

func TestFetchSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("range"); got != "1d" {
			t.Errorf("range = %q, want 1d", got)
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("interval = %q, want 1d", got)
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v8/finance/chart/AAPL":
			fmt.Fprint(w, chartBody(150.00, 1000000))
		case "/v8/finance/chart/MSFT":
			fmt.Fprint(w, chartBody(300.00, 2000000))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(server.URL)
	snapshot, err := fetcher.FetchSnapshot(context.Background(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)

	require.Len(t, snapshot.Tickers, 2)
	assert.Equal(t, "AAPL", snapshot.Tickers[0].Symbol)
	assert.Equal(t, 150.00, snapshot.Tickers[0].Close)
	assert.Equal(t, int64(1000000), snapshot.Tickers[0].Volume)
	assert.Equal(t, "MSFT", snapshot.Tickers[1].Symbol)
	assert.Equal(t, 300.00, snapshot.Tickers[1].Close)
	assert.Equal(t, int64(2000000), snapshot.Tickers[1].Volume)
}

func TestFetchSnapshotPreservesRequestedOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, chartBody(100.00, 500000))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.URL)
	snapshot, err := fetcher.FetchSnapshot(context.Background(), []string{"DIS", "BA", "NFLX"})
	require.NoError(t, err)

	require.Len(t, snapshot.Tickers, 3)
	assert.Equal(t, "DIS", snapshot.Tickers[0].Symbol)
	assert.Equal(t, "BA", snapshot.Tickers[1].Symbol)
	assert.Equal(t, "NFLX", snapshot.Tickers[2].Symbol)
}

func TestFetchSnapshotEmptySessionAbortsRun(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no results", `{"chart":{"result":[],"error":null}}`},
		{"no quotes", `{"chart":{"result":[{"indicators":{"quote":[]}}],"error":null}}`},
		{"empty sessions", `{"chart":{"result":[{"indicators":{"quote":[{"close":[],"volume":[]}]}}],"error":null}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			fetcher := NewFetcher(server.URL)
			_, err := fetcher.FetchSnapshot(context.Background(), []string{"AAPL"})

			var unavailable *DataUnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Equal(t, "AAPL", unavailable.Symbol)
		})
	}
}

func TestFetchSnapshotHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.URL)
	_, err := fetcher.FetchSnapshot(context.Background(), []string{"AAPL"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchSnapshotFailureProducesNoPartialSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v8/finance/chart/AAPL" {
			fmt.Fprint(w, chartBody(150.00, 1000000))
			return
		}
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.URL)
	snapshot, err := fetcher.FetchSnapshot(context.Background(), []string{"AAPL", "MSFT"})

	require.Error(t, err)
	assert.Nil(t, snapshot)
}

func TestFetchSnapshotContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	fetcher := NewFetcher(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.FetchSnapshot(ctx, []string{"AAPL"})
	require.Error(t, err)
}

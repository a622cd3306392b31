package hrfco

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroseo/hrfco-mcp/internal/config"
	"github.com/hydroseo/hrfco-mcp/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	log := logging.New(io.Discard, "silent")
	cache := NewTTLCache(300*time.Second, time.Hour, 1000, log)
	client := NewClient(config.UpstreamConfig{
		BaseURL:        ts.URL,
		APIKey:         "testkey",
		TimeoutSeconds: 5,
		MaxConcurrent:  5,
		RateLimitRPS:   1000,
	}, cache, log)
	t.Cleanup(client.Close)

	return client, ts, &hits
}

func TestListURLComposition(t *testing.T) {
	client, ts, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name string
		cat  Category
		g    Granularity
		code StationCode
		rng  *DateRange
		want string
	}{
		{
			name: "all stations, no range",
			cat:  Waterlevel, g: T1H,
			want: ts.URL + "/testkey/waterlevel/list/1H.json",
		},
		{
			name: "station without range",
			cat:  Rainfall, g: T10M, code: "10014010",
			want: ts.URL + "/testkey/rainfall/list/10M/10014010.json",
		},
		{
			name: "station with range",
			cat:  Waterlevel, g: T1H, code: "4009670",
			rng:  &DateRange{Start: "2024070100", End: "2024070223"},
			want: ts.URL + "/testkey/waterlevel/list/1H/4009670/2024070100/2024070223.json",
		},
		{
			name: "weir uses bo segment",
			cat:  Weir, g: T1D, code: "3012110",
			want: ts.URL + "/testkey/bo/list/1D/3012110.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.listURL(tt.cat, tt.g, tt.code, tt.rng))
		})
	}

	assert.Equal(t, ts.URL+"/testkey/dam/info.json", client.infoURL(Dam))
}

func TestFetchWrapsBareList(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{
			map[string]any{"ymdhm": "202407150100", "wl": "2.1"},
		})
	})

	payload, err := client.FetchSeries(context.Background(), Waterlevel, T1H, "4009670", nil)
	require.NoError(t, err)

	content, ok := payload["content"].([]any)
	require.True(t, ok, "bare list must be wrapped in a content container")
	assert.Len(t, content, 1)
}

func TestFetchCachesWithinTTL(t *testing.T) {
	client, _, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []any{map[string]any{"wl": "1.0"}}})
	})

	ctx := context.Background()
	rng := &DateRange{Start: "2024070100", End: "2024070223"}

	_, err := client.FetchSeries(ctx, Waterlevel, T1H, "4009670", rng)
	require.NoError(t, err)
	_, err = client.FetchSeries(ctx, Waterlevel, T1H, "4009670", rng)
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load(), "second identical fetch must be served from cache")

	// a different URL is a different entry
	_, err = client.FetchSeries(ctx, Waterlevel, T1H, "5001640", rng)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestFetchMapsUpstreamErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]any
		wantCode string
	}{
		{"invalid station as string", map[string]any{"code": "920"}, "920"},
		{"invalid date as number", map[string]any{"code": float64(930)}, "930"},
		{"unknown code", map[string]any{"code": "999"}, "999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.body)
			})

			_, err := client.FetchSeries(context.Background(), Waterlevel, T1H, "x", nil)
			require.Error(t, err)
			assert.Equal(t, KindAPI, KindOf(err))
			assert.Equal(t, tt.wantCode, CodeOf(err))

			// error payloads are never cached
			_, err = client.FetchSeries(context.Background(), Waterlevel, T1H, "x", nil)
			require.Error(t, err)
			assert.Equal(t, int64(2), hits.Load())
		})
	}
}

func TestFetchHTTPErrorIsAPIError(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchInfo(context.Background(), Waterlevel)
	require.Error(t, err)
	assert.Equal(t, KindAPI, KindOf(err))
}

func TestFetchCancelPassesThrough(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchInfo(ctx, Waterlevel)
	require.Error(t, err)
	assert.Equal(t, KindCancel, KindOf(err))
}

func TestFetchHonorsConcurrencyGate(t *testing.T) {
	var inFlight, peak atomic.Int64
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	})

	// distinct stations defeat the cache, so every call reaches the gate
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code := StationCode(fmt.Sprintf("40096%02d", i))
			_, err := client.FetchSeries(context.Background(), Waterlevel, T1H, code, nil)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(5),
		"upstream dispatches in flight must never exceed the configured cap")
}

func TestRedactKey(t *testing.T) {
	assert.Equal(t, "http://h/***/waterlevel/info.json",
		redactKey("http://h/secret/waterlevel/info.json", "secret"))
	assert.Equal(t, "url", redactKey("url", ""))
}

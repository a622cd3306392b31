package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroseo/hrfco-mcp/internal/catalog"
	"github.com/hydroseo/hrfco-mcp/internal/config"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
	"github.com/hydroseo/hrfco-mcp/internal/logging"
	"github.com/hydroseo/hrfco-mcp/internal/tools"
)

func newTestServer(t *testing.T, input string) []map[string]any {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/info.json") {
			json.NewEncoder(w).Encode(map[string]any{"content": []any{
				map[string]any{"wlobscd": "4009670", "obsnm": "공주보", "lon": "127-7-30", "lat": "36-28-0"},
			}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"content": []any{
			map[string]any{"ymdhm": "202407151100", "wl": "3.1"},
		}})
	}))
	t.Cleanup(ts.Close)

	cfg := config.Defaults()
	cfg.Upstream.BaseURL = ts.URL
	cfg.Upstream.APIKey = "testkey"
	cfg.Upstream.RateLimitRPS = 1000

	log := logging.New(io.Discard, "silent")
	cache := hrfco.NewTTLCache(time.Minute, time.Hour, 1000, log)
	client := hrfco.NewClient(cfg.Upstream, cache, log)
	t.Cleanup(client.Close)

	registry := tools.NewRegistry(client, catalog.New(client, time.Hour, log), &cfg, log)

	var out bytes.Buffer
	server := NewServer(registry, strings.NewReader(input), &out, log)
	require.NoError(t, server.Run(context.Background()))

	var responses []map[string]any
	scanner := bufio.NewScanner(&out)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if scanner.Text() == "" {
			continue
		}
		var resp map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp), "each output line must be one JSON object")
		responses = append(responses, resp)
	}
	return responses
}

func TestInitialize(t *testing.T) {
	responses := newTestServer(t, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`+"\n")
	require.Len(t, responses, 1)

	resp := responses[0]
	assert.Equal(t, "2.0", resp["jsonrpc"])
	assert.Equal(t, float64(1), resp["id"])

	result := resp["result"].(map[string]any)
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
	assert.Contains(t, result["capabilities"].(map[string]any), "tools")

	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, "hrfco-mcp", info["name"])
}

func TestToolsList(t *testing.T) {
	responses := newTestServer(t, `{"jsonrpc":"2.0","id":"list-1","method":"tools/list"}`+"\n")
	require.Len(t, responses, 1)

	assert.Equal(t, "list-1", responses[0]["id"], "id preserved verbatim")
	result := responses[0]["result"].(map[string]any)
	toolDefs := result["tools"].([]any)
	assert.Len(t, toolDefs, 12)

	first := toolDefs[0].(map[string]any)
	assert.Contains(t, first, "name")
	assert.Contains(t, first, "inputSchema")
}

func TestPing(t *testing.T) {
	responses := newTestServer(t, `{"jsonrpc":"2.0","id":42,"method":"ping"}`+"\n")
	require.Len(t, responses, 1)
	assert.Equal(t, float64(42), responses[0]["id"])
	assert.NotNil(t, responses[0]["result"])
	assert.Nil(t, responses[0]["error"])
}

func TestUnknownMethod(t *testing.T) {
	responses := newTestServer(t, `{"jsonrpc":"2.0","id":5,"method":"bogus/method"}`+"\n")
	require.Len(t, responses, 1)

	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(-32601), rpcErr["code"])
}

func TestParseError(t *testing.T) {
	responses := newTestServer(t, "this is not json\n")
	require.Len(t, responses, 1)

	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(-32700), rpcErr["code"])
}

func TestNotificationProducesNoResponse(t *testing.T) {
	responses := newTestServer(t, `{"jsonrpc":"2.0","method":"notifications/initialized"}`+"\n")
	assert.Empty(t, responses)
}

func TestCallToolSuccess(t *testing.T) {
	req := `{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"get_hydro_data","arguments":{"category":"waterlevel","station":"4009670"}}}`
	responses := newTestServer(t, req+"\n")
	require.Len(t, responses, 1)

	assert.Equal(t, float64(9), responses[0]["id"])
	result := responses[0]["result"].(map[string]any)
	content := result["content"].([]any)
	assert.NotEmpty(t, content)
}

func TestCallUnknownTool(t *testing.T) {
	req := `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"nope","arguments":{}}}`
	responses := newTestServer(t, req+"\n")
	require.Len(t, responses, 1)

	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(-32602), rpcErr["code"])
}

func TestCallToolValidationError(t *testing.T) {
	req := `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_hydro_data","arguments":{"category":"waterlevel"}}}`
	responses := newTestServer(t, req+"\n")
	require.Len(t, responses, 1)

	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(-32602), rpcErr["code"])
	data := rpcErr["data"].(map[string]any)
	assert.Equal(t, "validation", data["kind"])
}

func TestMultipleRequestsInOrder(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n" +
		`{"jsonrpc":"2.0","id":3,"method":"ping"}` + "\n"
	responses := newTestServer(t, input)
	require.Len(t, responses, 3)
	for i, resp := range responses {
		assert.Equal(t, float64(i+1), resp["id"])
	}
}

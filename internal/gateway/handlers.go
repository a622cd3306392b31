package gateway

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
	"github.com/hydroseo/hrfco-mcp/internal/mcp"
	"github.com/hydroseo/hrfco-mcp/internal/version"
)

const maxBodyBytes = 1 << 20 // 1MB

// jsonRPCRequest mirrors the stdio envelope for POST /mcp.
type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      any           `json:"id"`
	Result  any           `json:"result,omitempty"`
	Error   *jsonRPCError `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// handleMCP serves JSON-RPC over HTTP with the same method set and error
// codes as the stdio transport.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeRPC(w, jsonRPCResponse{JSONRPC: "2.0", Error: &jsonRPCError{Code: -32700, Message: "Parse error", Data: err.Error()}})
		return
	}

	var req jsonRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeRPC(w, jsonRPCResponse{JSONRPC: "2.0", Error: &jsonRPCError{Code: -32700, Message: "Parse error", Data: err.Error()}})
		return
	}

	switch req.Method {
	case "initialize":
		writeRPC(w, jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: mcp.InitializeResult{
			ProtocolVersion: mcp.ProtocolVersion,
			Capabilities:    mcp.Capabilities{Tools: map[string]interface{}{}},
			ServerInfo:      mcp.ServerInfo{Name: "hrfco-mcp", Version: version.Version},
		}})
	case "tools/list":
		writeRPC(w, jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{"tools": s.registry.Definitions()}})
	case "tools/call":
		var params callParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			writeRPC(w, jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Error: &jsonRPCError{Code: -32602, Message: "Invalid params", Data: err.Error()}})
			return
		}
		result, err := s.registry.Call(r.Context(), params.Name, params.Arguments)
		if err != nil {
			code := -32603
			if kind := hrfco.KindOf(err); kind == hrfco.KindValidation || kind == hrfco.KindObservatory {
				code = -32602
			}
			writeRPC(w, jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Error: &jsonRPCError{
				Code:    code,
				Message: err.Error(),
				Data:    map[string]any{"kind": string(hrfco.KindOf(err))},
			}})
			return
		}
		writeRPC(w, jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: result})
	case "ping":
		writeRPC(w, jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{}})
	default:
		writeRPC(w, jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Error: &jsonRPCError{
			Code: -32601, Message: "Method not found", Data: req.Method,
		}})
	}
}

// callTool dispatches a REST request through the registry and maps error
// kinds onto HTTP statuses.
func (s *Server) callTool(w http.ResponseWriter, r *http.Request, name string, args map[string]any) {
	result, err := s.registry.Call(r.Context(), name, args)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// statusFor maps tagged error kinds to HTTP statuses.
func statusFor(err error) int {
	switch hrfco.KindOf(err) {
	case hrfco.KindValidation:
		return http.StatusBadRequest
	case hrfco.KindObservatory:
		return http.StatusNotFound
	case hrfco.KindAPI:
		return http.StatusBadGateway
	case hrfco.KindCancel:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	body := map[string]any{
		"error": err.Error(),
		"kind":  string(hrfco.KindOf(err)),
	}
	if code := hrfco.CodeOf(err); code != "" {
		body["upstream_code"] = code
	}
	writeJSON(w, statusFor(err), body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeRPC(w http.ResponseWriter, resp jsonRPCResponse) {
	writeJSON(w, http.StatusOK, resp)
}

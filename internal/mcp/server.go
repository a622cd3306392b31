package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
	"github.com/hydroseo/hrfco-mcp/internal/logging"
	"github.com/hydroseo/hrfco-mcp/internal/tools"
	"github.com/hydroseo/hrfco-mcp/internal/version"
)

// Server serves JSON-RPC over a line-delimited stream, dispatching
// tools/call requests through the registry. No buffering across lines, no
// multiplexing; requests are handled in arrival order and the id of each
// request is preserved verbatim in its response.
type Server struct {
	registry *tools.Registry
	log      *logging.Logger
	in       io.Reader
	out      io.Writer
}

// NewServer builds a stdio server over the given streams.
func NewServer(registry *tools.Registry, in io.Reader, out io.Writer, log *logging.Logger) *Server {
	return &Server{
		registry: registry,
		log:      log.Sub("mcp"),
		in:       in,
		out:      out,
	}
}

// Run consumes requests until the input stream closes or the context is
// canceled.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	s.log.Info().Msg("listening for requests on stdin")

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		s.handleLine(ctx, line)
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		s.log.Error().Err(err).Msg("reading stdin")
		return err
	}
	s.log.Info().Msg("input closed; shutting down")
	return nil
}

func (s *Server) handleLine(ctx context.Context, line string) {
	var req JSONRPCRequest
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.sendError(nil, codeParseError, "Parse error", err.Error())
		return
	}

	s.log.Debug().Str("method", req.Method).Msg("handling request")

	switch req.Method {
	case "initialize":
		s.sendResponse(req.ID, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities: Capabilities{
				Tools: map[string]interface{}{},
			},
			ServerInfo: ServerInfo{
				Name:    "hrfco-mcp",
				Version: version.Version,
			},
		})
	case "tools/list":
		s.sendResponse(req.ID, ListToolsResult{Tools: s.registry.Definitions()})
	case "tools/call":
		s.handleCallTool(ctx, req)
	case "ping":
		s.sendResponse(req.ID, map[string]interface{}{})
	case "notifications/initialized":
		// Notification: no id, no response.
		s.log.Debug().Msg("client initialized")
	default:
		s.sendError(req.ID, codeMethodNotFound, "Method not found",
			fmt.Sprintf("Unknown method: %s", req.Method))
	}
}

func (s *Server) handleCallTool(ctx context.Context, req JSONRPCRequest) {
	var params CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.sendError(req.ID, codeInvalidParams, "Invalid params", err.Error())
		return
	}
	if !s.registry.Has(params.Name) {
		s.sendError(req.ID, codeInvalidParams, "Unknown tool",
			fmt.Sprintf("Tool not found: %s", params.Name))
		return
	}

	result, err := s.registry.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		s.sendError(req.ID, rpcCode(err), err.Error(), errorData(err))
		return
	}
	s.sendResponse(req.ID, result)
}

// rpcCode maps tagged error kinds onto JSON-RPC codes: argument problems
// are invalid-params, everything else is an internal error.
func rpcCode(err error) int {
	switch hrfco.KindOf(err) {
	case hrfco.KindValidation, hrfco.KindObservatory:
		return codeInvalidParams
	default:
		return codeInternalError
	}
}

func errorData(err error) map[string]interface{} {
	data := map[string]interface{}{"kind": string(hrfco.KindOf(err))}
	if code := hrfco.CodeOf(err); code != "" {
		data["upstream_code"] = code
	}
	return data
}

func (s *Server) sendResponse(id interface{}, result interface{}) {
	s.write(JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) sendError(id interface{}, code int, message string, data interface{}) {
	s.write(JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message, Data: data},
	})
}

func (s *Server) write(resp JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error().Err(err).Msg("marshaling response")
		return
	}
	fmt.Fprintln(s.out, string(data))
}

package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/attention-cta/internal/analysis"
	"github.com/ironsheep/attention-cta/internal/detection"
	"github.com/ironsheep/attention-cta/internal/logging"
	"github.com/ironsheep/attention-cta/internal/metrics"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "attention_analyze_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		logging.Warn(logging.Fields{"tool": params.Name, "error": err.Error()}, "tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case ToolAnalyzeImage:
		return s.handleAnalyzeImage(ctx, args)
	case ToolAnalyzeVideo:
		return s.handleAnalyzeVideo(ctx, args)
	case ToolAnalyzeAOI:
		return s.handleAnalyzeAOI(ctx, args)
	case ToolInterpret:
		return s.handleInterpret(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type pathArgs struct {
	Path string `json:"path"`
}

func (a pathArgs) validate() error {
	if a.Path == "" {
		return fmt.Errorf("%w: path is required", analysis.ErrInput)
	}
	return nil
}

func (s *Server) handleAnalyzeImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", analysis.ErrInput, err)
	}
	job, err := s.analyzer.AnalyzeImage(ctx, img)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.Put(ctx, job); err != nil {
		return nil, err
	}
	return job.Result, nil
}

func (s *Server) handleAnalyzeVideo(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	report, err := s.analyzer.AnalyzeVideoFile(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	for _, job := range report.Jobs {
		if err := s.jobs.Put(ctx, job); err != nil {
			return nil, err
		}
	}
	return report, nil
}

type aoiArgs struct {
	JobID string          `json:"job_id"`
	Boxes []detection.Box `json:"boxes"`
}

func (s *Server) handleAnalyzeAOI(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a aoiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.JobID == "" {
		return nil, fmt.Errorf("%w: job_id is required", analysis.ErrInput)
	}

	job, err := s.jobs.Get(ctx, a.JobID)
	if err != nil {
		return nil, err
	}
	return analysis.AnalyzeAOI(job, a.Boxes)
}

type interpretArgs struct {
	Visibility float64  `json:"visibility"`
	Focus      float64  `json:"focus"`
	Balanced   float64  `json:"balanced"`
	CTA        *float64 `json:"cta"`
}

func (s *Server) handleInterpret(args json.RawMessage) (interface{}, error) {
	var a interpretArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return metrics.Interpret(metrics.ScoreSet{
		Visibility: a.Visibility,
		Focus:      a.Focus,
		Balanced:   a.Balanced,
		CTA:        a.CTA,
	}), nil
}

// Package server implements the MCP (Model Context Protocol) server for
// attention and CTA analysis.
//
// This package provides a JSON-RPC 2.0 server that exposes the analysis
// pipeline through the MCP protocol, so MCP-compatible clients can score ad
// creatives and query areas of interest on earlier results.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - attention_analyze_image: Saliency, gaze points, metrics and CTA for one image
//   - attention_analyze_video: Key-frame sampling plus per-frame analysis
//   - attention_analyze_aoi: Visibility and fixations for boxes on a stored job
//   - attention_interpret: Tier table for a set of scores
//
// Analyze calls store their jobs in the configured store.Store, so the job_id
// they return can be passed to attention_analyze_aoi later.
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(analyzer, store.NewMemoryStore(time.Hour))
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server

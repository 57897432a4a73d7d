// Package server implements the MCP (Model Context Protocol) server for complex
// function plots.
//
// This package provides a JSON-RPC 2.0 server that exposes domain coloring and
// related plots through the MCP protocol. A client sends a function of z as a
// Go expression together with the plotted rectangle, the sampling grid and the
// shading flags, and receives a base64 PNG plus the metadata needed to read it.
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
// Plots:
//   - complex_domain_color: Phase as hue, optional |f| or ln|f| bands and integer grid
//   - complex_checker_plot: Black and white stripes in Re, Im, arg and ln|f|
//   - complex_pd_phase_plot: Phase through a protan/deutan safe cyclic map
//   - complex_t_phase_plot: Phase through a tritan safe cyclic map
//
// Color reference:
//   - complex_phase_wheel: The phase sweep as a strip, landmark colors, gamut report
//   - complex_sample: f(z), |f(z)|, arg f(z) and the pixel color at given points
//
// Batch:
//   - complex_plot_batch: Several plots rendered concurrently
//
// # Expression Caching
//
// Compiled expressions are cached by source text, so re-plotting the same
// function over a different rectangle skips the interpreter. The cache
// persists for the lifetime of the server process.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32602 (bad arguments, including invalid axes or pixel counts and
//     expressions that do not compile), -32000 (tool execution failure),
//     or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Points where the function is undefined or panics are not errors; they are
// painted neutral grey and counted in the result.
//
// # Configuration
//
// Settings come from the environment, see LoadConfig.
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server

// Package server implements the MCP (Model Context Protocol) server for batch
// photo editing.
//
// This package provides a JSON-RPC 2.0 server that exposes a dataset of
// images, their adjustment parameters and the export pipeline through the
// MCP protocol.
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
// Dataset Management:
//   - image_load: Add files or a directory of images to the dataset
//   - image_list: List items, selection and dataset statistics
//   - image_remove, image_clear: Drop items
//   - image_select: Change the selection (explicit, toggle or range)
//
// Adjustments:
//   - image_set_params: Update the base parameters or per-item overrides
//   - image_reset_params: Drop overrides
//   - image_dataset_stats: Mean luma and effective exposure per item
//
// Rendering:
//   - image_render: Render an item at preview, detail or full resolution
//   - image_filter: Run the single-image editor chain
//   - image_swirl: Radial swirl distortion
//   - image_transform: Crop, rotate, flip or resize an item in place
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_dominant_colors: Extract color palette
//
// Export:
//   - image_export: Render at full resolution and write PNG/JPEG files, or
//     a single export.zip once the batch reaches export.ArchiveThreshold
//
// # Dataset State
//
// All items live in one in-memory dataset.Library for the lifetime of the
// process. Each item keeps a downsampled preview whose mean luma drives auto
// exposure.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(config.Load(), version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server

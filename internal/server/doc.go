// Package server implements the MCP (Model Context Protocol) server for mean
// shift image segmentation.
//
// This package provides a JSON-RPC 2.0 server that exposes the segmenter
// through the MCP protocol, so MCP-compatible clients can split images into
// regions of homogeneous color and inspect them.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_unload: Drop one image, or all images, from the cache
//
// Segmentation:
//   - image_segment: Segmented image (or region boundaries) as base64
//   - image_segment_regions: Regions with size, mean color, bounds and centroid
//
// Both segmentation tools accept spatial_radius, range_radius, min_density,
// speedup and connectivity, defaulting to meanshift.DefaultParams, plus an
// optional region crop, scale factor and grayscale switch. Parameters are
// validated before the image is read.
//
// # Image Caching
//
// Decoded images are cached by path, so segmenting one file repeatedly with
// different parameters reads it once. They stay cached until image_unload
// evicts them.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or -32602 (malformed params)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server

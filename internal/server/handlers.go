package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/meanshift-mcp/internal/imaging"
	"github.com/ironsheep/meanshift-mcp/internal/meanshift"
)

// defaultRegionLimit caps the region list of image_segment_regions when the
// caller gives no limit.
const defaultRegionLimit = 50

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_segment").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn().Err(err).Str("tool", params.Name).Msg("tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool executed")

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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Validates segmentation parameters before touching the image
//  4. Loads images from cache as needed
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_unload":
		return s.handleImageUnload(args)

	// Segmentation
	case "image_segment":
		return s.handleImageSegment(args)
	case "image_segment_regions":
		return s.handleImageSegmentRegions(args)

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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageUnloadArgs struct {
	Path string `json:"path"`
	All  bool   `json:"all"`
}

// UnloadResult reports the effect of an image_unload call.
type UnloadResult struct {
	Evicted int `json:"evicted"`
	Cached  int `json:"cached"`
}

func (s *Server) handleImageUnload(args json.RawMessage) (interface{}, error) {
	var a imageUnloadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var evicted int
	switch {
	case a.All:
		evicted = s.cache.Clear()
	case a.Path == "":
		return nil, fmt.Errorf("path is required unless all is true")
	case s.cache.Evict(a.Path):
		evicted = 1
	}
	s.logger.Debug().Str("path", a.Path).Bool("all", a.All).Int("evicted", evicted).Msg("image cache eviction")

	return &UnloadResult{Evicted: evicted, Cached: s.cache.Len()}, nil
}

// === Segmentation Handlers ===

// segmentArgs are the arguments shared by the segmentation tools. Numeric
// parameters are pointers so an explicit zero is kept rather than replaced by
// the default.
type segmentArgs struct {
	Path          string          `json:"path"`
	SpatialRadius *int            `json:"spatial_radius"`
	RangeRadius   *float64        `json:"range_radius"`
	MinDensity    *int            `json:"min_density"`
	SpeedUp       string          `json:"speedup"`
	Connectivity  int             `json:"connectivity"`
	Region        *imaging.Region `json:"region"`
	Scale         float64         `json:"scale"`
	Grayscale     bool            `json:"grayscale"`
}

// params merges the arguments over meanshift.DefaultParams. Range checks
// are left to meanshift.New.
func (a *segmentArgs) params() (meanshift.Params, error) {
	p := meanshift.DefaultParams()
	if a.SpatialRadius != nil {
		p.SpatialRadius = *a.SpatialRadius
	}
	if a.RangeRadius != nil {
		p.RangeRadius = *a.RangeRadius
	}
	if a.MinDensity != nil {
		p.MinDensity = *a.MinDensity
	}
	if a.SpeedUp != "" {
		level, err := meanshift.ParseSpeedUpLevel(a.SpeedUp)
		if err != nil {
			return p, err
		}
		p.SpeedUp = level
	}
	if a.Connectivity != 0 {
		p.Connectivity = a.Connectivity
	}
	return p, nil
}

// segment validates the parameters, then loads, prepares and segments the
// image named by a.
func (s *Server) segment(a *segmentArgs) (*meanshift.Segmenter, *meanshift.Result, error) {
	p, err := a.params()
	if err != nil {
		return nil, nil, err
	}
	seg, err := meanshift.New(p,
		meanshift.WithLogger(s.logger),
		meanshift.WithWorkers(s.workers),
	)
	if err != nil {
		return nil, nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}
	img, err = imaging.Prepare(img, a.Region, a.Scale)
	if err != nil {
		return nil, nil, err
	}

	res, err := seg.Segment(imaging.ToRaster(img, a.Grayscale))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to segment image: %w", err)
	}
	return seg, res, nil
}

type imageSegmentArgs struct {
	segmentArgs
	Format string `json:"format"`
	Output string `json:"output"`
}

// SegmentResult is the response of image_segment.
type SegmentResult struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Channels     int    `json:"channels"`
	RegionCount  int    `json:"region_count"`
	ImageBase64  string `json:"image_base64"`
	MimeType     string `json:"mime_type"`
	NonConverged int    `json:"non_converged"`
	Segmenter    string `json:"segmenter"`
}

func (s *Server) handleImageSegment(args json.RawMessage) (interface{}, error) {
	var a imageSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		a.Output = "segmented"
	}
	if a.Output != "segmented" && a.Output != "boundaries" {
		return nil, fmt.Errorf("unknown output: %s", a.Output)
	}

	seg, res, err := s.segment(&a.segmentArgs)
	if err != nil {
		return nil, err
	}

	out := imaging.FromRaster(res.Segmented)
	if a.Output == "boundaries" {
		out = imaging.Boundaries(res.Labels)
	}
	enc, err := imaging.Encode(out, a.Format)
	if err != nil {
		return nil, err
	}

	return &SegmentResult{
		Width:        enc.Width,
		Height:       enc.Height,
		Channels:     res.Segmented.Channels,
		RegionCount:  res.RegionCount,
		ImageBase64:  enc.ImageBase64,
		MimeType:     enc.MimeType,
		NonConverged: res.Stats.Filter.NonConverged,
		Segmenter:    seg.String(),
	}, nil
}

type imageSegmentRegionsArgs struct {
	segmentArgs
	Limit int `json:"limit"`
}

func (s *Server) handleImageSegmentRegions(args json.RawMessage) (interface{}, error) {
	var a imageSegmentRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Limit == 0 {
		a.Limit = defaultRegionLimit
	}

	_, res, err := s.segment(&a.segmentArgs)
	if err != nil {
		return nil, err
	}
	return imaging.SummarizeRegions(res, a.Limit), nil
}

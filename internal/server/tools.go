package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema of the image path argument shared by all tools.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// segmentProperties returns the schema properties shared by the segmentation
// tools. Each call returns a fresh map so callers may extend it.
func segmentProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty,
		"spatial_radius": map[string]interface{}{
			"type":        "integer",
			"description": "Spatial bandwidth in pixels (>= 0). Default 7",
			"minimum":     0,
			"default":     7,
		},
		"range_radius": map[string]interface{}{
			"type":        "number",
			"description": "Range bandwidth in color units (>= 0). Color images use CIE L*u*v* scaled so L spans 0-100; grayscale uses raw intensity. Default 6.5",
			"minimum":     0,
			"default":     6.5,
		},
		"min_density": map[string]interface{}{
			"type":        "integer",
			"description": "Minimum region size in pixels; smaller regions are merged into their most similar neighbor. Default 20",
			"minimum":     0,
			"default":     20,
		},
		"speedup": map[string]interface{}{
			"type":        "string",
			"description": "Filtering speed-up level. 'none' runs mean shift for every pixel; 'medium' and 'high' reuse modes of similar neighbors. Default 'high'",
			"enum":        []string{"none", "medium", "high"},
			"default":     "high",
		},
		"connectivity": map[string]interface{}{
			"type":        "integer",
			"description": "Pixel adjacency used to form regions: 4 or 8. Default 8",
			"enum":        []int{4, 8},
			"default":     8,
		},
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional sub-rectangle to segment, x2/y2 exclusive",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional resize factor applied before segmenting (e.g., 0.5 to halve). Default 1.0",
			"default":     1.0,
		},
		"grayscale": map[string]interface{}{
			"type":        "boolean",
			"description": "Segment the luminance channel only. Default false",
			"default":     false,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	segment := segmentProperties()
	segment["format"] = map[string]interface{}{
		"type":        "string",
		"description": "Output encoding. Default 'png'",
		"enum":        []string{"png", "webp"},
		"default":     "png",
	}
	segment["output"] = map[string]interface{}{
		"type":        "string",
		"description": "'segmented' paints every pixel with its region's mean color; 'boundaries' draws region borders white on black. Default 'segmented'",
		"enum":        []string{"segmented", "boundaries"},
		"default":     "segmented",
	}

	regions := segmentProperties()
	regions["limit"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum number of regions to list, largest first. Default 50",
		"default":     50,
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and the channel count used for segmentation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_unload",
			Description: "Drop a decoded image from the server's cache, or every cached image when 'all' is true. Returns how many images were evicted and how many remain cached.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"all": map[string]interface{}{
						"type":        "boolean",
						"description": "Evict every cached image instead of one path. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Segmentation
		{
			Name:        "image_segment",
			Description: "Segment an image with mean shift filtering and region merging. Returns the segmented image (each region painted with its mean color) as base64, with the number of regions.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": segment,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_segment_regions",
			Description: "Segment an image with mean shift and list the resulting regions largest first: pixel count, mean color, bounding box and centroid.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": regions,
				"required":   []string{"path"},
			},
		},
	}
}

// handleToolsList returns the tool catalogue
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Schema fragments shared by several tools.
var (
	idProperty = map[string]interface{}{
		"type":        "string",
		"description": "Item ID returned by image_load (e.g. \"img-3\")",
	}
	pathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to an image file, used when no id is given",
	}
	viewProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"preview", "detail", "full"},
		"description": "Resolution to render: square preview tile, quarter size detail, or full size",
	}
	outputPathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Optional file path to write the image to instead of returning base64 data",
	}
	formatProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"png", "jpeg"},
		"description": "Image encoding. Default png",
		"default":     "png",
	}
	scopeProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"auto", "sel", "all", "exceptSel"},
		"description": "Which items to target: auto (selection, or all if nothing is selected), sel, all, or exceptSel",
		"default":     "auto",
	}
	paramsProperty = map[string]interface{}{
		"type":        "object",
		"description": "Adjustments to apply. Omitted fields are left unchanged.",
		"properties": map[string]interface{}{
			"brightness_pct": map[string]interface{}{"type": "number", "description": "Brightness gain in percent, 100 = unchanged"},
			"temperature":    map[string]interface{}{"type": "number", "description": "White balance, -100 (cool) to 100 (warm)"},
			"exposure_ev":    map[string]interface{}{"type": "number", "description": "Exposure in stops, -4 to 4"},
			"contrast_pct":   map[string]interface{}{"type": "number", "description": "Contrast in percent, 100 = unchanged"},
			"gamma":          map[string]interface{}{"type": "number", "description": "Gamma, 0.1 to 3.0, 1 = unchanged"},
			"saturation_pct": map[string]interface{}{"type": "number", "description": "Saturation in percent, 100 = unchanged, 0 = gray"},
			"auto_exposure": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"enabled":      map[string]interface{}{"type": "boolean", "description": "Equalize brightness across the dataset"},
					"pivot_offset": map[string]interface{}{"type": "number", "description": "Shift of the target luma relative to the dataset mean"},
					"strength":     map[string]interface{}{"type": "number", "description": "Correction strength, 1 = full"},
				},
			},
		},
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Dataset Management
		{
			Name:        "image_load",
			Description: "Add images to the working dataset. Accepts a single file, a list of files, or a directory (non-recursive; png, jpeg, webp, gif, bmp, tiff). Returns the new item IDs and the dataset mean luma.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to an image file or a directory of images",
					},
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Several absolute image paths",
					},
				},
			},
		},
		{
			Name:        "image_list",
			Description: "List the items in the dataset with their size, mean luma, selection state and whether they have individual adjustments. Also returns the shared base adjustments.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_remove",
			Description: "Remove one item from the dataset.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "image_clear",
			Description: "Remove every item from the dataset. Base adjustments are kept.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_select",
			Description: "Change which items are selected. Operations run in this order: all, ids, toggle, range_to. A range selects everything between the last toggled item and range_to.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"all": map[string]interface{}{
						"type":        "boolean",
						"description": "Select (true) or deselect (false) every item",
					},
					"ids": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Items to set to the 'selected' value",
					},
					"selected": map[string]interface{}{
						"type":        "boolean",
						"description": "Selection state for ids. Default true",
						"default":     true,
					},
					"toggle": map[string]interface{}{
						"type":        "string",
						"description": "Item to toggle; becomes the range anchor",
					},
					"range_to": map[string]interface{}{
						"type":        "string",
						"description": "Select from the anchor to this item, inclusive",
					},
				},
			},
		},

		// Adjustments
		{
			Name:        "image_set_params",
			Description: "Change tone and color adjustments. Without id or scope the shared base adjustments change for every item that has not been edited on its own. With id, or with scope, each targeted item gets its own adjustments (a copy of the base on first edit).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":     idProperty,
					"scope":  scopeProperty,
					"params": paramsProperty,
					"preview_size": map[string]interface{}{
						"type":        "integer",
						"description": "Optional new edge length of preview tiles",
					},
				},
				"required": []string{"params"},
			},
		},
		{
			Name:        "image_reset_params",
			Description: "Drop an item's individual adjustments so it follows the base again. Without id, resets the base to defaults and drops every individual adjustment.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
				},
			},
		},
		{
			Name:        "image_dataset_stats",
			Description: "Report the dataset mean luma and, per item, its mean luma, resolved adjustments and the total exposure (including auto exposure) it renders with.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"recompute": map[string]interface{}{
						"type":        "boolean",
						"description": "Re-measure every preview before reporting",
					},
				},
			},
		},

		// Rendering
		{
			Name:        "image_render",
			Description: "Render an item with its resolved adjustments and return it as base64-encoded image data, or write it to output_path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":          idProperty,
					"view":        viewProperty,
					"format":      formatProperty,
					"output_path": outputPathProperty,
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "image_filter",
			Description: "Run the single-image editor chain: brightness and contrast offsets, saturation and hue, invert, a color mode, then blur and sharpen. The source is a rendered dataset item (id) or an image file (path).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":   idProperty,
					"path": pathProperty,
					"view": viewProperty,
					"brightness": map[string]interface{}{
						"type":        "number",
						"description": "Additive brightness, -100 to 100",
					},
					"contrast": map[string]interface{}{
						"type":        "number",
						"description": "Contrast, -100 to 100",
					},
					"saturation": map[string]interface{}{
						"type":        "number",
						"description": "Saturation change in percent, -100 = gray",
					},
					"hue": map[string]interface{}{
						"type":        "number",
						"description": "Hue rotation in degrees",
					},
					"invert": map[string]interface{}{
						"type":        "boolean",
						"description": "Invert colors",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"none", "grayscale", "sepia", "saturation-gray"},
						"description": "Color mode applied after invert",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Saturation threshold in percent for saturation-gray (default 50)",
						"default":     50,
					},
					"blur": map[string]interface{}{
						"type":        "number",
						"description": "Box blur radius in pixels",
					},
					"sharpen": map[string]interface{}{
						"type":        "number",
						"description": "Sharpen amount, 0 = off",
					},
					"format":      formatProperty,
					"output_path": outputPathProperty,
				},
			},
		},
		{
			Name:        "image_swirl",
			Description: "Twist the image around its center. Pixels farther from the center rotate more; amount is the rotation in radians at the corners.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":   idProperty,
					"path": pathProperty,
					"view": viewProperty,
					"amount": map[string]interface{}{
						"type":        "number",
						"description": "Rotation in radians at the corners; negative swirls the other way",
					},
					"format":      formatProperty,
					"output_path": outputPathProperty,
				},
				"required": []string{"amount"},
			},
		},
		{
			Name:        "image_transform",
			Description: "Crop, rotate, flip or resize an item's source image. Its preview and mean luma are rebuilt.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"kind": map[string]interface{}{
						"type": "string",
						"enum": []string{"crop", "rotate", "flip", "resize"},
					},
					"x1": map[string]interface{}{"type": "integer", "description": "Crop left edge (inclusive)"},
					"y1": map[string]interface{}{"type": "integer", "description": "Crop top edge (inclusive)"},
					"x2": map[string]interface{}{"type": "integer", "description": "Crop right edge (exclusive)"},
					"y2": map[string]interface{}{"type": "integer", "description": "Crop bottom edge (exclusive)"},
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named crop region, used instead of x1..y2",
					},
					"degrees": map[string]interface{}{
						"type":        "integer",
						"description": "Clockwise rotation: 90, 180 or 270",
					},
					"axis": map[string]interface{}{
						"type": "string",
						"enum": []string{"horizontal", "vertical"},
					},
					"width":  map[string]interface{}{"type": "integer", "description": "Resize width"},
					"height": map[string]interface{}{"type": "integer", "description": "Resize height"},
				},
				"required": []string{"id", "kind"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel of a rendered item (id) or an image file (path), as hex, RGBA, HSL and luma.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":   idProperty,
					"path": pathProperty,
					"view": viewProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract the most common colors of a rendered item (id) or an image file (path). Useful for spotting color casts across a batch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":   idProperty,
					"path": pathProperty,
					"view": viewProperty,
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return (default 5)",
						"default":     5,
					},
				},
			},
		},

		// Export
		{
			Name:        "image_export",
			Description: "Render the targeted items at full resolution and write them to a directory. Fewer than 8 items are written as individual files; 8 or more are written as a single export.zip.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scope": scopeProperty,
					"ids": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Explicit items to export; overrides scope",
					},
					"name_mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"simple", "detail"},
						"description": "simple: <name>_edited.png; detail: adjustments encoded in the file name",
						"default":     "simple",
					},
					"format": formatProperty,
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write to. Defaults to the server's configured output directory",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

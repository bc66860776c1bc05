package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Tool names.
const (
	ToolAnalyzeImage = "attention_analyze_image"
	ToolAnalyzeVideo = "attention_analyze_video"
	ToolAnalyzeAOI   = "attention_analyze_aoi"
	ToolInterpret    = "attention_interpret"
)

func pathProperty(what string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the " + what + " file",
	}
}

func scoreProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
		"minimum":     0,
		"maximum":     100,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: ToolAnalyzeImage,
			Description: "Predict where attention lands on an image and find its call-to-action. " +
				"Returns visibility, focus, balance and CTA scores with interpretations, ranked gaze points, " +
				"the winning CTA box and a job_id usable with attention_analyze_aoi.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("image"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name: ToolAnalyzeVideo,
			Description: "Sample key-frames from a video (about one every two seconds, only when the scene changes) " +
				"and run the image analysis on each. Returns the per-frame results in timestamp order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("video"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name: ToolAnalyzeAOI,
			Description: "Measure attention inside areas of interest of a previously analyzed image: " +
				"masked share, number of gaze points and rank of the first gaze point per box. " +
				"Boxes of 10 pixels or less on a side are rejected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"job_id": map[string]interface{}{
						"type":        "string",
						"description": "job_id returned by attention_analyze_image or attention_analyze_video",
					},
					"boxes": map[string]interface{}{
						"type":        "array",
						"description": "Areas of interest in image pixels",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "integer"},
								"y": map[string]interface{}{"type": "integer"},
								"w": map[string]interface{}{"type": "integer"},
								"h": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"x", "y", "w", "h"},
						},
					},
				},
				"required": []string{"job_id", "boxes"},
			},
		},
		{
			Name:        ToolInterpret,
			Description: "Map scores to tiers (excellent, good, fair, poor) with explanatory text.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"visibility": scoreProperty("Share of the image inside the attention mask"),
					"focus":      scoreProperty("Concentration of attention in its largest region"),
					"balanced":   scoreProperty("Attention of the centre relative to the whole image"),
					"cta":        scoreProperty("CTA confidence; omit when no CTA was found"),
				},
				"required": []string{"visibility", "focus", "balanced"},
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

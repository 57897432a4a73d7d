package server

import "github.com/ironsheep/domaincolor-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Tool names.
const (
	ToolDomainColor = "complex_domain_color"
	ToolCheckerPlot = "complex_checker_plot"
	ToolPDPhasePlot = "complex_pd_phase_plot"
	ToolTPhasePlot  = "complex_t_phase_plot"
	ToolPhaseWheel  = "complex_phase_wheel"
	ToolSample      = "complex_sample"
	ToolPlotBatch   = "complex_plot_batch"
)

func boolProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": description,
		"default":     false,
	}
}

// plotProperties are the arguments shared by every plotting tool.
func plotProperties() map[string]interface{} {
	return map[string]interface{}{
		"expression": map[string]interface{}{
			"type":        "string",
			"description": "Function of z as a Go expression of type complex128. The math and math/cmplx packages are available, e.g. \"cmplx.Exp(1/z)\" or \"(z*z - 1) / (z*z + 1)\"",
		},
		"axes": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "number"},
			"description": "Plotted rectangle: [a] for [-a,a]x[-a,a], [a,b] for [-a,a]x[-b,b], or [re_min,re_max,im_min,im_max]. Default [-1,1,-1,1]",
		},
		"pixels": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "integer"},
			"description": "Sampling grid: [n] for n x n or [nx,ny]. Default [720,720]",
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional nearest-neighbour scale factor applied to the rendered PNG. The scaled image is subject to the same pixel limit as the grid. Default 1.0",
			"default":     1.0,
			"minimum":     0,
			"maximum":     imaging.MaxScale,
		},
		"show_axes": boolProperty("Draw the real and imaginary axes and label the corner coordinates"),
		"axis_color": map[string]interface{}{
			"type":        "string",
			"description": "Axis color in hex format (#RRGGBB or #RRGGBBAA). Default semi-transparent white",
		},
	}
}

func domainColorProperties() map[string]interface{} {
	props := plotProperties()
	props["abs"] = boolProperty("Encode |f(z)| as lightness bands, one band per unit")
	props["logabs"] = boolProperty("Encode ln|f(z)| as lightness bands; takes precedence over abs")
	props["grid"] = boolProperty("Mark points where Re f(z) or Im f(z) is near an integer")
	props["all"] = boolProperty("Shorthand for abs and grid together")
	props["grid_tolerance"] = map[string]interface{}{
		"type":        "number",
		"description": "Distance to an integer that counts as on the grid. Default 0.03",
	}
	return props
}

func checkerProperties() map[string]interface{} {
	props := plotProperties()
	props["real"] = boolProperty("Stripes across Re f(z), 5 per unit")
	props["imag"] = boolProperty("Stripes across Im f(z), 5 per unit")
	props["rect"] = boolProperty("Shorthand for real and imag (the default when no pattern is chosen)")
	props["angle"] = boolProperty("Stripes across arg f(z), 32 per turn")
	props["abs"] = boolProperty("Stripes across ln|f(z)|, 5 per unit")
	props["phase"] = boolProperty("Shorthand for angle and abs")
	props["polar"] = boolProperty("Synonym of phase")
	return props
}

func cyclicProperties() map[string]interface{} {
	props := plotProperties()
	props["colormap_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional absolute path to a cyclic colormap file (one 'r,g,b' triple in [0,1] or '#rrggbb' per line) replacing the built-in map",
	}
	return props
}

func withRequired(props map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Plots
		{
			Name:        ToolDomainColor,
			Description: "Render a domain coloring of a complex function: hue follows arg f(z) through a perceptually uniform sweep (red 0, green 2pi/3, cyan pi, blue 4pi/3), with optional magnitude bands and integer grid lines. Returns a base64 PNG with the top edge at the largest imaginary part.",
			InputSchema: withRequired(domainColorProperties(), "expression"),
		},
		{
			Name:        ToolCheckerPlot,
			Description: "Render a black and white checkerboard of a complex function built from stripes in Re, Im, arg and log|f(z)|. Shows how f distorts rectangular or polar grids; conformal maps keep the squares square.",
			InputSchema: withRequired(checkerProperties(), "expression"),
		},
		{
			Name:        ToolPDPhasePlot,
			Description: "Render a phase-only plot of a complex function with a cyclic colormap readable under protanopia and deuteranopia (yellow 0, white pi/2, blue pi, black 3pi/2).",
			InputSchema: withRequired(cyclicProperties(), "expression"),
		},
		{
			Name:        ToolTPhasePlot,
			Description: "Render a phase-only plot of a complex function with a cyclic colormap readable under tritanopia (red 0, white pi/2, cyan pi, black 3pi/2).",
			InputSchema: withRequired(cyclicProperties(), "expression"),
		},

		// Color reference
		{
			Name:        ToolPhaseWheel,
			Description: "Render the phase color sweep from 0 to 2pi as a strip, list the colors of the landmark phases, and report how much of the sweep had to be clamped into sRGB.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Strip width in pixels (one phase per column). Default 360",
						"default":     360,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Strip height in pixels. Default 40",
						"default":     40,
					},
					"lightness_offset": map[string]interface{}{
						"type":        "number",
						"description": "Lightness added to the sweep for the gamut report, e.g. -10 or 10 for the darkest and lightest magnitude bands. Default 0",
						"default":     0,
					},
				},
			},
		},
		{
			Name:        ToolSample,
			Description: "Evaluate a complex function at specific points and report f(z), |f(z)|, arg f(z) and the domain coloring color of each point.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"expression": plotProperties()["expression"],
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to evaluate",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"re":    map[string]interface{}{"type": "number"},
								"im":    map[string]interface{}{"type": "number"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"re", "im"},
						},
					},
					"abs":    boolProperty("Apply |f(z)| lightness bands to the reported color"),
					"logabs": boolProperty("Apply ln|f(z)| lightness bands to the reported color"),
					"grid":   boolProperty("Apply the integer grid marker to the reported color"),
					"all":    boolProperty("Shorthand for abs and grid"),
				},
				"required": []string{"expression", "points"},
			},
		},

		// Batch
		{
			Name:        ToolPlotBatch,
			Description: "Render several plots concurrently. Each entry names its kind (domain_color, checker, pd_phase or t_phase) plus the arguments of the matching plot tool. Results come back in input order; a failing entry reports its error without failing the batch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"plots": map[string]interface{}{
						"type":        "array",
						"description": "Plots to render",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"kind": map[string]interface{}{
									"type": "string",
									"enum": []string{"domain_color", "checker", "pd_phase", "t_phase"},
								},
							},
							"required": []string{"kind", "expression"},
						},
					},
				},
				"required": []string{"plots"},
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

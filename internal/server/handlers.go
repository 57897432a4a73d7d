package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"math/cmplx"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"

	"github.com/ironsheep/domaincolor-mcp/internal/imaging"
	"github.com/ironsheep/domaincolor-mcp/internal/plot"
	"github.com/ironsheep/domaincolor-mcp/internal/shading"
)

// maxPixelCount keeps float pixel counts well inside int range before
// conversion. The configured MaxPixels limit applies on top of it.
const maxPixelCount = 1 << 24

// maxBatch is the largest number of plots one batch request may hold.
const maxBatch = 64

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "complex_domain_color").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		var argErr *argumentError
		if errors.As(err, &argErr) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
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
//
// Each plotting handler:
//  1. Unmarshals arguments from JSON
//  2. Compiles the expression (through the cache)
//  3. Builds the shader from the flags
//  4. Evaluates the grid and renders the PNG
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Plots
	case ToolDomainColor:
		return s.handleDomainColor(args)
	case ToolCheckerPlot:
		return s.handleCheckerPlot(args)
	case ToolPDPhasePlot:
		return s.handleCyclicPlot(args, shading.CBC1)
	case ToolTPhasePlot:
		return s.handleCyclicPlot(args, shading.CBTC1)

	// Color reference
	case ToolPhaseWheel:
		return s.handlePhaseWheel(args)
	case ToolSample:
		return s.handleSample(args)

	// Batch
	case ToolPlotBatch:
		return s.handlePlotBatch(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// argumentError marks failures caused by the caller's arguments rather than
// by evaluation.
type argumentError struct {
	err error
}

func (e *argumentError) Error() string { return e.err.Error() }

func (e *argumentError) Unwrap() error { return e.err }

func invalidArgs(err error) error {
	if err == nil {
		return nil
	}
	return &argumentError{err: err}
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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Plot Handlers ===

// plotArgs are the arguments every plotting tool accepts.
type plotArgs struct {
	Expression string    `json:"expression"`
	Axes       []float64 `json:"axes"`
	Pixels     []float64 `json:"pixels"`
	Scale      float64   `json:"scale"`
	ShowAxes   bool      `json:"show_axes"`
	AxisColor  string    `json:"axis_color"`
}

type domainColorArgs struct {
	plotArgs
	shading.DomainColorConfig
}

type checkerArgs struct {
	plotArgs
	shading.CheckerConfig
}

type cyclicArgs struct {
	plotArgs
	ColormapPath string `json:"colormap_path"`
}

func (s *Server) handleDomainColor(args json.RawMessage) (interface{}, error) {
	var a domainColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidArgs(err)
	}
	return s.renderPlot(a.plotArgs, shading.NewDomainColor(a.DomainColorConfig))
}

func (s *Server) handleCheckerPlot(args json.RawMessage) (interface{}, error) {
	var a checkerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidArgs(err)
	}
	return s.renderPlot(a.plotArgs, shading.NewChecker(a.CheckerConfig))
}

func (s *Server) handleCyclicPlot(args json.RawMessage, builtin *shading.CyclicMap) (interface{}, error) {
	var a cyclicArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidArgs(err)
	}
	cmap := builtin
	if a.ColormapPath != "" {
		loaded, err := shading.LoadCyclicMapFile(a.ColormapPath)
		if err != nil {
			return nil, invalidArgs(err)
		}
		cmap = loaded
	}
	return s.renderPlot(a.plotArgs, shading.NewCyclicPhase(cmap))
}

// renderPlot compiles the expression, evaluates it over the requested grid
// and renders the PNG.
func (s *Server) renderPlot(a plotArgs, shader shading.Shader) (*imaging.PlotResult, error) {
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	pixels, err := pixelCounts(a.Pixels)
	if err != nil {
		return nil, invalidArgs(err)
	}
	// checked before compiling so bad requests stay cheap
	if _, err := plot.NormalizeAxes(a.Axes...); err != nil {
		return nil, invalidArgs(err)
	}
	grid, err := plot.NormalizePixels(pixels...)
	if err != nil {
		return nil, invalidArgs(err)
	}
	width, height, err := imaging.ScaledSize(grid, a.Scale)
	if err != nil {
		return nil, invalidArgs(err)
	}
	if s.config.MaxPixels > 0 && width > s.config.MaxPixels/height {
		return nil, invalidArgs(fmt.Errorf("%w: scaled image %dx%d exceeds the limit of %d pixels",
			imaging.ErrRenderSize, width, height, s.config.MaxPixels))
	}

	fn, err := s.cache.Load(a.Expression)
	if err != nil {
		return nil, invalidArgs(err)
	}

	img, err := plot.Evaluate(fn.Func(), a.Axes, pixels, shader, s.evalOptions()...)
	if err != nil {
		return nil, invalidArgs(err)
	}

	result, err := imaging.Render(img, imaging.RenderOptions{
		Scale:     a.Scale,
		ShowAxes:  a.ShowAxes,
		AxisColor: a.AxisColor,
	})
	if err != nil {
		return nil, err
	}
	result.Elapsed = formatElapsed(img.Elapsed)

	if s.config.Debug() {
		log.Printf("Rendered %q over %+v: %s samples in %s, %s PNG, %d non-finite, %d failures",
			fn.Source, img.Rect,
			humanize.Comma(int64(img.Grid.Len())),
			result.Elapsed,
			humanize.Bytes(uint64(result.SizeBytes)),
			img.NonFinite, img.Failures)
	}

	return result, nil
}

func (s *Server) evalOptions() []plot.Option {
	opts := []plot.Option{
		plot.WithWorkers(s.config.Workers),
		plot.WithMaxPixels(s.config.MaxPixels),
	}
	if s.config.Serialize {
		opts = append(opts, plot.WithSerializedCalls())
	}
	return opts
}

// pixelCounts converts JSON numbers to pixel counts, rejecting anything
// that is not a whole number.
func pixelCounts(spec []float64) ([]int, error) {
	counts := make([]int, len(spec))
	for k, v := range spec {
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: pixel counts must be integers, got %v", plot.ErrInvalidResolution, v)
		}
		if v > maxPixelCount || v < -maxPixelCount {
			return nil, fmt.Errorf("%w: pixel count %v out of range", plot.ErrInvalidResolution, v)
		}
		counts[k] = int(v)
	}
	return counts, nil
}

func formatElapsed(d time.Duration) string {
	if d < time.Microsecond {
		d = time.Microsecond
	}
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}

// === Color Reference Handlers ===

type phaseWheelArgs struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	LightnessOffset float64 `json:"lightness_offset"`
}

// PhaseLandmark is the sweep color at a named phase.
type PhaseLandmark struct {
	Phase   string              `json:"phase"`
	Radians float64             `json:"radians"`
	Color   imaging.ColorResult `json:"color"`
}

// PhaseWheelResult is returned by complex_phase_wheel.
type PhaseWheelResult struct {
	Strip     *imaging.StripResult `json:"strip"`
	Landmarks []PhaseLandmark      `json:"landmarks"`
	Gamut     shading.GamutReport  `json:"gamut"`
}

var landmarkPhases = []struct {
	name    string
	radians float64
}{
	{"0", 0},
	{"pi/3", math.Pi / 3},
	{"2pi/3", 2 * math.Pi / 3},
	{"pi", math.Pi},
	{"4pi/3", 4 * math.Pi / 3},
	{"5pi/3", 5 * math.Pi / 3},
}

func (s *Server) handlePhaseWheel(args json.RawMessage) (interface{}, error) {
	var a phaseWheelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidArgs(err)
	}
	if a.Width == 0 {
		a.Width = 360
	}
	if a.Height == 0 {
		a.Height = 40
	}
	if a.Width < 0 || a.Height < 0 || a.Width > 4096 || a.Height > 4096 {
		return nil, invalidArgs(fmt.Errorf("%w: strip must be between 1 and 4096 pixels on each side, got %dx%d",
			plot.ErrInvalidResolution, a.Width, a.Height))
	}
	if math.IsNaN(a.LightnessOffset) || math.Abs(a.LightnessOffset) > 100 {
		return nil, invalidArgs(fmt.Errorf("lightness_offset must be within [-100, 100], got %v", a.LightnessOffset))
	}

	strip, err := imaging.Strip(shading.Wheel(a.Width), a.Height)
	if err != nil {
		return nil, err
	}

	landmarks := make([]PhaseLandmark, len(landmarkPhases))
	for k, p := range landmarkPhases {
		landmarks[k] = PhaseLandmark{
			Phase:   p.name,
			Radians: p.radians,
			Color:   imaging.DescribeColor(shading.LabColor(p.radians)),
		}
	}

	return &PhaseWheelResult{
		Strip:     strip,
		Landmarks: landmarks,
		Gamut:     shading.SweepGamut(a.Width, a.LightnessOffset),
	}, nil
}

type samplePoint struct {
	Re    float64 `json:"re"`
	Im    float64 `json:"im"`
	Label string  `json:"label,omitempty"`
}

type sampleArgs struct {
	Expression string        `json:"expression"`
	Points     []samplePoint `json:"points"`
	shading.DomainColorConfig
}

// SampleResult describes f at one point. Magnitude and Phase are omitted
// when f(z) is not finite.
type SampleResult struct {
	Label     string              `json:"label,omitempty"`
	Z         string              `json:"z"`
	Value     string              `json:"value"`
	Finite    bool                `json:"finite"`
	Magnitude *float64            `json:"magnitude,omitempty"`
	Phase     *float64            `json:"phase,omitempty"`
	Color     imaging.ColorResult `json:"color"`
	Error     string              `json:"error,omitempty"`
}

func (s *Server) handleSample(args json.RawMessage) (interface{}, error) {
	var a sampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidArgs(err)
	}
	if len(a.Points) == 0 {
		return nil, invalidArgs(fmt.Errorf("at least one point is required"))
	}

	fn, err := s.cache.Load(a.Expression)
	if err != nil {
		return nil, invalidArgs(err)
	}
	shader := shading.NewDomainColor(a.DomainColorConfig)

	results := make([]SampleResult, len(a.Points))
	for k, p := range a.Points {
		z := complex(p.Re, p.Im)
		w, callErr := callRecovered(fn.Func(), z)

		r := SampleResult{
			Label:  p.Label,
			Z:      formatComplex(z),
			Value:  formatComplex(w),
			Finite: shading.IsFinite(w),
			Color:  imaging.DescribeColor(shader.Shade(w)),
		}
		if callErr != nil {
			r.Error = callErr.Error()
		}
		if r.Finite {
			m, ph := cmplx.Abs(w), cmplx.Phase(w)
			if !math.IsInf(m, 0) {
				r.Magnitude = &m
			}
			r.Phase = &ph
		}
		results[k] = r
	}

	return map[string]interface{}{
		"expression": fn.Source,
		"samples":    results,
	}, nil
}

// callRecovered evaluates f at z, reporting a panic as an error and a NaN
// value.
func callRecovered(f func(complex128) complex128, z complex128) (w complex128, err error) {
	defer func() {
		if r := recover(); r != nil {
			w = cmplx.NaN()
			err = fmt.Errorf("function panicked at %s: %v", formatComplex(z), r)
		}
	}()
	return f(z), nil
}

func formatComplex(z complex128) string {
	return strconv.FormatComplex(z, 'g', -1, 128)
}

// === Batch Handler ===

type batchArgs struct {
	Plots []json.RawMessage `json:"plots"`
}

type batchKind struct {
	Kind string `json:"kind"`
}

// BatchEntry is the outcome of one plot in a batch.
type BatchEntry struct {
	Index  int                 `json:"index"`
	Kind   string              `json:"kind"`
	Result *imaging.PlotResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

func (s *Server) handlePlotBatch(args json.RawMessage) (interface{}, error) {
	var a batchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidArgs(err)
	}
	if len(a.Plots) == 0 {
		return nil, invalidArgs(fmt.Errorf("at least one plot is required"))
	}
	if len(a.Plots) > maxBatch {
		return nil, invalidArgs(fmt.Errorf("batch holds %d plots, limit is %d", len(a.Plots), maxBatch))
	}

	start := time.Now()
	entries := make([]BatchEntry, len(a.Plots))
	swg := sizedwaitgroup.New(s.config.BatchConcurrency)
	for k, raw := range a.Plots {
		swg.Add()
		go func(k int, raw json.RawMessage) {
			defer swg.Done()
			entries[k] = s.batchPlot(k, raw)
		}(k, raw)
	}
	swg.Wait()

	failed := 0
	for _, e := range entries {
		if e.Error != "" {
			failed++
		}
	}
	if s.config.Debug() {
		log.Printf("Batch of %d plots (%d failed) in %s", len(entries), failed, formatElapsed(time.Since(start)))
	}

	return map[string]interface{}{
		"plots":   entries,
		"failed":  failed,
		"elapsed": formatElapsed(time.Since(start)),
	}, nil
}

func (s *Server) batchPlot(index int, raw json.RawMessage) BatchEntry {
	entry := BatchEntry{Index: index}

	var k batchKind
	if err := json.Unmarshal(raw, &k); err != nil {
		entry.Error = err.Error()
		return entry
	}
	entry.Kind = k.Kind

	var (
		result interface{}
		err    error
	)
	switch k.Kind {
	case "domain_color":
		result, err = s.handleDomainColor(raw)
	case "checker":
		result, err = s.handleCheckerPlot(raw)
	case "pd_phase":
		result, err = s.handleCyclicPlot(raw, shading.CBC1)
	case "t_phase":
		result, err = s.handleCyclicPlot(raw, shading.CBTC1)
	default:
		err = fmt.Errorf("unknown plot kind: %q", k.Kind)
	}
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	entry.Result = result.(*imaging.PlotResult)
	return entry
}

package shading

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// cyclicTableSize is the resolution built-in maps are expanded to, matching
// the 256-entry tables ColorCET publishes.
const cyclicTableSize = 256

// ErrCyclicMap is returned for color map input that cannot form a cycle.
var ErrCyclicMap = errors.New("invalid cyclic color map")

// CyclicMap is a periodic lookup table from phase to color. Entry k sits at
// phase 2πk/n; phases in between interpolate linearly in sRGB and the last
// entry wraps to the first.
type CyclicMap struct {
	name  string
	table []colorful.Color
}

// Name returns the map name.
func (m *CyclicMap) Name() string {
	return m.name
}

// Len returns the number of table entries.
func (m *CyclicMap) Len() int {
	return len(m.table)
}

// At returns the color for phase theta.
func (m *CyclicMap) At(theta float64) colorful.Color {
	n := len(m.table)
	t := wrapPhase(theta) / (2 * math.Pi) * float64(n)
	i := int(math.Floor(t))
	if i >= n {
		i = n - 1
	}
	f := t - float64(i)
	return m.table[i].BlendRgb(m.table[(i+1)%n], f).Clamped()
}

// NewCyclicMap builds a map by interpolating evenly spaced anchor colors in
// Lab, which keeps the lightness steps between anchors even.
func NewCyclicMap(name string, anchors ...colorful.Color) (*CyclicMap, error) {
	if len(anchors) < 2 {
		return nil, fmt.Errorf("%w: %s needs at least 2 anchors, got %d", ErrCyclicMap, name, len(anchors))
	}
	table := make([]colorful.Color, cyclicTableSize)
	per := float64(cyclicTableSize) / float64(len(anchors))
	for k := range table {
		pos := float64(k) / per
		a := int(pos)
		t := pos - float64(a)
		from := anchors[a%len(anchors)]
		to := anchors[(a+1)%len(anchors)]
		table[k] = from.BlendLab(to, t).Clamped()
	}
	return &CyclicMap{name: name, table: table}, nil
}

// NewCyclicTable wraps an existing lookup table without resampling.
func NewCyclicTable(name string, table []colorful.Color) (*CyclicMap, error) {
	if len(table) < 2 {
		return nil, fmt.Errorf("%w: %s has %d entries", ErrCyclicMap, name, len(table))
	}
	out := make([]colorful.Color, len(table))
	for k, c := range table {
		out[k] = c.Clamped()
	}
	return &CyclicMap{name: name, table: out}, nil
}

// LoadCyclicMap reads a lookup table, one color per line. A line is either
// a hex color ("#rrggbb") or three numbers separated by commas or spaces,
// in [0,1] or, if any exceeds 1, in 0-255. Blank lines and lines starting
// with '#' followed by a space are skipped.
func LoadCyclicMap(r io.Reader, name string) (*CyclicMap, error) {
	var table []colorful.Color
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "# ") || strings.HasPrefix(text, "//") {
			continue
		}
		c, err := parseMapLine(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrCyclicMap, name, line, err)
		}
		table = append(table, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read color map %s: %w", name, err)
	}
	return NewCyclicTable(name, table)
}

// LoadCyclicMapFile is LoadCyclicMap on the file at path.
func LoadCyclicMapFile(path string) (*CyclicMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open color map: %w", err)
	}
	defer f.Close()
	return LoadCyclicMap(f, path)
}

// parseMapLine never echoes line content in its errors, since map files
// may be any file the caller can name.
func parseMapLine(text string) (colorful.Color, error) {
	if strings.HasPrefix(text, "#") {
		c, err := colorful.Hex(text)
		if err != nil {
			return colorful.Color{}, errors.New("not a #rrggbb hex color")
		}
		return c, nil
	}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
	if len(fields) != 3 {
		return colorful.Color{}, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	var v [3]float64
	scale := 1.0
	for k, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("component %d is not a number", k+1)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return colorful.Color{}, fmt.Errorf("component %d out of range", k+1)
		}
		if x > 1 {
			scale = 255
		}
		v[k] = x
	}
	return colorful.Color{R: v[0] / scale, G: v[1] / scale, B: v[2] / scale}, nil
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func mustCyclic(name string, hexes ...string) *CyclicMap {
	anchors := make([]colorful.Color, len(hexes))
	for k, h := range hexes {
		anchors[k] = mustHex(h)
	}
	m, err := NewCyclicMap(name, anchors...)
	if err != nil {
		panic(err)
	}
	return m
}

// Built-in colorblind-safe phase maps, modelled on the ColorCET cyclic maps
// of the same names.
var (
	// CBC1 is safe for protanopic and deuteranopic viewers: yellow at 0,
	// white at π/2, blue at π and black at 3π/2.
	CBC1 = mustCyclic("CBC1", "#d9c341", "#ececec", "#3b7bd1", "#2a2a2a")

	// CBTC1 is safe for tritanopic viewers: red at 0, white at π/2, cyan at
	// π and black at 3π/2.
	CBTC1 = mustCyclic("CBTC1", "#d6453d", "#ececec", "#29b2c6", "#2a2a2a")
)

// CyclicPhase shades phase only, through a cyclic color map.
type CyclicPhase struct {
	cmap *CyclicMap
}

// NewCyclicPhase builds a phase-only shader over cmap.
func NewCyclicPhase(cmap *CyclicMap) *CyclicPhase {
	return &CyclicPhase{cmap: cmap}
}

// Map returns the color map in use.
func (p *CyclicPhase) Map() *CyclicMap {
	return p.cmap
}

// Shade implements Shader.
func (p *CyclicPhase) Shade(w complex128) colorful.Color {
	if !IsFinite(w) {
		return Sentinel
	}
	return p.cmap.At(cmplx.Phase(w))
}

// Package config reads a declarative chart description from YAML or TOML and
// builds the chart it describes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"gochart/internal/errs"
	"gochart/internal/geom"
)

// File is a chart description. Zero values select defaults.
type File struct {
	Width    float64 `yaml:"width" toml:"width"`
	Height   float64 `yaml:"height" toml:"height"`
	FontSize float64 `yaml:"fontSize" toml:"fontSize"`
	// Padding is one value for every side or four values: top, right,
	// bottom, left.
	Padding []float64 `yaml:"padding" toml:"padding"`

	// Data is a data file path, relative to the description.
	Data string           `yaml:"data" toml:"data"`
	Rows []map[string]any `yaml:"rows" toml:"rows"`

	Position Position             `yaml:"position" toml:"position"`
	Scales   map[string]ScaleSpec `yaml:"scales" toml:"scales"`
	Coord    CoordSpec            `yaml:"coord" toml:"coord"`
	HideAxes bool                 `yaml:"hideAxes" toml:"hideAxes"`
	Axes     map[string]AxisSpec  `yaml:"axes" toml:"axes"`
	Legend   *LegendSpec          `yaml:"legend" toml:"legend"`
	Tooltip  *TooltipSpec         `yaml:"tooltip" toml:"tooltip"`

	// Dir resolves relative data paths; Load sets it.
	Dir string `yaml:"-" toml:"-"`
}

// Position binds fields to the chart channels.
type Position struct {
	X     string `yaml:"x" toml:"x"`
	Y     string `yaml:"y" toml:"y"`
	Color string `yaml:"color" toml:"color"`
}

type ScaleSpec struct {
	Type      string   `yaml:"type" toml:"type"`
	Alias     string   `yaml:"alias" toml:"alias"`
	Min       *float64 `yaml:"min" toml:"min"`
	Max       *float64 `yaml:"max" toml:"max"`
	Values    []string `yaml:"values" toml:"values"`
	Nice      bool     `yaml:"nice" toml:"nice"`
	TickCount int      `yaml:"tickCount" toml:"tickCount"`
	Band      bool     `yaml:"band" toml:"band"`
	// Format is a fmt verb applied to numeric values, e.g. "%.1f%%".
	Format string `yaml:"format" toml:"format"`
}

// CoordSpec takes its angles in degrees.
type CoordSpec struct {
	Type        string          `yaml:"type" toml:"type"`
	Radius      *float64        `yaml:"radius" toml:"radius"`
	InnerRadius *float64        `yaml:"innerRadius" toml:"innerRadius"`
	StartAngle  *float64        `yaml:"startAngle" toml:"startAngle"`
	EndAngle    *float64        `yaml:"endAngle" toml:"endAngle"`
	Transforms  []TransformSpec `yaml:"transforms" toml:"transforms"`
}

// TransformSpec is one coordinate operation: rotate (Angle), scale (X, Y),
// reflect (Axis) or transpose.
type TransformSpec struct {
	Op    string  `yaml:"op" toml:"op"`
	Angle float64 `yaml:"angle" toml:"angle"`
	X     float64 `yaml:"x" toml:"x"`
	Y     float64 `yaml:"y" toml:"y"`
	Axis  string  `yaml:"axis" toml:"axis"`
}

type AxisSpec struct {
	Enabled      *bool      `yaml:"enabled" toml:"enabled"`
	Position     string     `yaml:"position" toml:"position"`
	Title        *TitleSpec `yaml:"title" toml:"title"`
	Label        *LabelSpec `yaml:"label" toml:"label"`
	Line         *bool      `yaml:"line" toml:"line"`
	TickLength   *float64   `yaml:"tickLength" toml:"tickLength"`
	SubTickCount int        `yaml:"subTickCount" toml:"subTickCount"`
	Grid         *GridSpec  `yaml:"grid" toml:"grid"`
}

type TitleSpec struct {
	Text     string  `yaml:"text" toml:"text"`
	Position string  `yaml:"position" toml:"position"`
	Offset   float64 `yaml:"offset" toml:"offset"`
}

type LabelSpec struct {
	Offset     *float64 `yaml:"offset" toml:"offset"`
	Rotate     float64  `yaml:"rotate" toml:"rotate"`
	AutoRotate *bool    `yaml:"autoRotate" toml:"autoRotate"`
}

type GridSpec struct {
	Enabled       *bool  `yaml:"enabled" toml:"enabled"`
	Align         string `yaml:"align" toml:"align"`
	HideFirstLine bool   `yaml:"hideFirstLine" toml:"hideFirstLine"`
	HideLastLine  bool   `yaml:"hideLastLine" toml:"hideLastLine"`
}

type LegendSpec struct {
	Enabled *bool `yaml:"enabled" toml:"enabled"`
	// Field defaults to the colour field.
	Field            string           `yaml:"field" toml:"field"`
	Position         string           `yaml:"position" toml:"position"`
	SelectedMode     string           `yaml:"selectedMode" toml:"selectedMode"`
	AllowAllCanceled bool             `yaml:"allowAllCanceled" toml:"allowAllCanceled"`
	UnCheckColor     string           `yaml:"unCheckColor" toml:"unCheckColor"`
	Colors           []string         `yaml:"colors" toml:"colors"`
	Marker           string           `yaml:"marker" toml:"marker"`
	Items            []LegendItemSpec `yaml:"items" toml:"items"`
	// Unchecked lists the entries that start unchecked.
	Unchecked []string `yaml:"unchecked" toml:"unchecked"`
}

type LegendItemSpec struct {
	Value  string `yaml:"value" toml:"value"`
	Name   string `yaml:"name" toml:"name"`
	Color  string `yaml:"color" toml:"color"`
	Marker string `yaml:"marker" toml:"marker"`
}

type TooltipSpec struct {
	Enabled    *bool  `yaml:"enabled" toml:"enabled"`
	TriggerOn  string `yaml:"triggerOn" toml:"triggerOn"`
	Shared     bool   `yaml:"shared" toml:"shared"`
	Crosshairs string `yaml:"crosshairs" toml:"crosshairs"`
	ShowTitle  bool   `yaml:"showTitle" toml:"showTitle"`
	TitleField string `yaml:"titleField" toml:"titleField"`
}

// IsConfigFile reports whether path has a description extension.
func IsConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// Load reads a description, choosing YAML or TOML by extension. Unknown
// keys are errors.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(&file)
	case ".toml":
		err = toml.NewDecoder(f).DisallowUnknownFields().Decode(&file)
	default:
		return nil, errs.Config("config", errs.ErrUnsupported, "file type ", filepath.Ext(path))
	}
	if err != nil {
		return nil, errs.Config("config", err, filepath.Base(path))
	}
	file.Dir = filepath.Dir(path)
	return &file, nil
}

func enabled(b *bool) bool { return b == nil || *b }

func (f *File) padding() (geom.Padding, error) {
	switch len(f.Padding) {
	case 0:
		return geom.Padding{}, nil
	case 1:
		return geom.Uniform(f.Padding[0]), nil
	case 4:
		p := f.Padding
		return geom.Padding{Top: p[0], Right: p[1], Bottom: p[2], Left: p[3]}, nil
	}
	return geom.Padding{}, errs.Config("config", errs.ErrUnsupported, fmt.Sprintf("padding needs 1 or 4 values, got %d", len(f.Padding)))
}

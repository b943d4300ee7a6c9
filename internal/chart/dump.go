package chart

import (
	"math"

	"gochart/internal/geom"
)

type pointDoc struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type rectDoc struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type tickDoc struct {
	Text string   `yaml:"text"`
	At   pointDoc `yaml:"at"`
}

type axisDoc struct {
	Field    string    `yaml:"field"`
	Position string    `yaml:"position"`
	Rotate   float64   `yaml:"rotate,omitempty"`
	Title    string    `yaml:"title,omitempty"`
	Ticks    []tickDoc `yaml:"ticks"`
}

type legendItemDoc struct {
	Value   string `yaml:"value"`
	Color   string `yaml:"color"`
	Checked bool   `yaml:"checked"`
}

type legendDoc struct {
	Field    string          `yaml:"field"`
	Position string          `yaml:"position"`
	Items    []legendItemDoc `yaml:"items"`
}

type markDoc struct {
	Index  int      `yaml:"index"`
	Series string   `yaml:"series,omitempty"`
	Color  string   `yaml:"color"`
	At     pointDoc `yaml:"at"`
}

type frameDoc struct {
	Width    float64     `yaml:"width"`
	Height   float64     `yaml:"height"`
	Coord    string      `yaml:"coord"`
	Plot     rectDoc     `yaml:"plot"`
	Axes     []axisDoc   `yaml:"axes,omitempty"`
	Legends  []legendDoc `yaml:"legends,omitempty"`
	Marks    []markDoc   `yaml:"marks"`
	Warnings []string    `yaml:"warnings,omitempty"`
}

func pt(p geom.Point) pointDoc { return pointDoc{X: round(p.X), Y: round(p.Y)} }

// round trims float noise from dumped coordinates.
func round(f float64) float64 {
	r := math.Round(f*1e4) / 1e4
	if r == 0 {
		return 0
	}
	return r
}

// MarshalYAML dumps the frame as plain geometry: the plot rectangle, axis
// ticks, legend entries and placed marks.
func (f *Frame) MarshalYAML() (any, error) {
	doc := frameDoc{
		Width:  f.Width,
		Height: f.Height,
		Coord:  string(f.Transform.Type()),
		Plot: rectDoc{
			X: round(f.Layout.Plot.X), Y: round(f.Layout.Plot.Y),
			Width: round(f.Layout.Plot.Width), Height: round(f.Layout.Plot.Height),
		},
		Marks: []markDoc{},
	}
	for _, a := range f.Axes {
		ad := axisDoc{Field: a.Field, Position: string(a.Position), Rotate: a.Rotate}
		if a.Title != nil {
			ad.Title = a.Title.Text
		}
		for _, tk := range a.Ticks {
			ad.Ticks = append(ad.Ticks, tickDoc{Text: tk.Text, At: pt(tk.From)})
		}
		doc.Axes = append(doc.Axes, ad)
	}
	for _, l := range f.Legends {
		ld := legendDoc{Field: l.Field, Position: string(l.Position)}
		for _, it := range l.Items {
			ld.Items = append(ld.Items, legendItemDoc{Value: it.Value, Color: it.Color, Checked: it.Checked})
		}
		doc.Legends = append(doc.Legends, ld)
	}
	for _, p := range f.Points {
		doc.Marks = append(doc.Marks, markDoc{Index: p.Index, Series: p.Series, Color: p.Color, At: pt(p.Pixel)})
	}
	for _, w := range f.Warnings {
		doc.Warnings = append(doc.Warnings, w.Error())
	}
	return doc, nil
}

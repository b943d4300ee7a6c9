// Package coord maps normalized points onto the plot rectangle through a
// base topology (rect, polar, theta, helix) and an ordered list of
// rotate, scale and reflect operations, and maps pixels back again.
//
// A Coordinate is the live, chainable description. Build turns it into an
// immutable Transform for one plot rectangle; Transform.Invert is the exact
// inverse of Transform.Convert.
package coord

import (
	"math"
	"strings"

	"gochart/internal/errs"
)

// Type names a base topology.
type Type string

const (
	TypeRect  Type = "rect"
	TypePolar Type = "polar"
	TypeTheta Type = "theta"
	TypeHelix Type = "helix"
)

// ParseType validates a coordinate type name. The empty string selects rect.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case "", "cartesian":
		return TypeRect, nil
	case TypeRect, TypePolar, TypeTheta, TypeHelix:
		return t, nil
	}
	return "", errs.Config("coord", errs.ErrUnsupported, "type ", s)
}

// Config holds the polar-family parameters. Radii are fractions of half
// the smaller plot side; angles are radians.
type Config struct {
	Radius      float64 // outer radius, 1 when zero
	InnerRadius float64
	StartAngle  *float64
	EndAngle    *float64
}

// OpKind names a transform operation.
type OpKind string

const (
	OpRotate    OpKind = "rotate"
	OpScale     OpKind = "scale"
	OpReflect   OpKind = "reflect"
	OpTranspose OpKind = "transpose"
)

// Op is one recorded transform operation.
type Op struct {
	Kind   OpKind
	Angle  float64 // rotate, degrees
	SX, SY float64 // scale
	Axis   string  // reflect: "x", "y" or "xy"
}

// Coordinate is an ordered list of operations over a base topology.
type Coordinate struct {
	typ Type
	cfg Config
	ops []Op
	rev uint64
}

// New returns a coordinate with no operations. Configuration problems are
// reported by Build.
func New(typ Type, cfg Config) *Coordinate {
	if typ == "" {
		typ = TypeRect
	}
	return &Coordinate{typ: typ, cfg: cfg}
}

func (c *Coordinate) Type() Type { return c.typ }

// Config returns the polar-family configuration.
func (c *Coordinate) Config() Config { return c.cfg }

// Revision changes every time an operation is appended.
func (c *Coordinate) Revision() uint64 { return c.rev }

// Ops returns the operations in call order.
func (c *Coordinate) Ops() []Op {
	return append([]Op(nil), c.ops...)
}

// Transposed reports whether Transpose was called an odd number of times.
func (c *Coordinate) Transposed() bool {
	n := 0
	for _, op := range c.ops {
		if op.Kind == OpTranspose {
			n++
		}
	}
	return n%2 == 1
}

// Rotate appends a rotation by angle degrees about the plot centre.
// Positive angles turn clockwise on screen.
func (c *Coordinate) Rotate(angle float64) *Coordinate {
	return c.push(Op{Kind: OpRotate, Angle: angle})
}

// Scale appends a scaling about the plot centre. Factors must be non-zero.
func (c *Coordinate) Scale(sx, sy float64) *Coordinate {
	return c.push(Op{Kind: OpScale, SX: sx, SY: sy})
}

// Reflect flips the x, y or both ("xy") pixel ranges about the plot centre.
// An empty axis flips y.
func (c *Coordinate) Reflect(axis string) *Coordinate {
	if axis == "" {
		axis = "y"
	}
	return c.push(Op{Kind: OpReflect, Axis: axis})
}

// Transpose swaps x and y. It takes effect before every other operation
// whatever the call order.
func (c *Coordinate) Transpose() *Coordinate {
	return c.push(Op{Kind: OpTranspose})
}

// Apply appends op as if the matching method had been called.
func (c *Coordinate) Apply(op Op) *Coordinate {
	return c.push(op)
}

func (c *Coordinate) push(op Op) *Coordinate {
	c.ops = append(c.ops, op)
	c.rev++
	return c
}

// Validate reports the first configuration error without a plot rectangle.
func (c *Coordinate) Validate() error {
	switch c.typ {
	case TypeRect, TypePolar, TypeTheta, TypeHelix:
	default:
		return errs.Config("coord", errs.ErrUnsupported, "type ", c.typ)
	}
	for _, op := range c.ops {
		switch op.Kind {
		case OpScale:
			if op.SX == 0 || op.SY == 0 || math.IsNaN(op.SX) || math.IsNaN(op.SY) {
				return errs.Config("coord", errs.ErrZeroScale)
			}
		case OpReflect:
			if _, _, ok := reflectFactors(op.Axis); !ok {
				return errs.Config("coord", errs.ErrUnsupported, "reflect axis ", op.Axis)
			}
		case OpRotate, OpTranspose:
		default:
			return errs.Config("coord", errs.ErrUnsupported, "op ", op.Kind)
		}
	}
	if c.typ == TypeRect {
		return nil
	}
	outer, inner := c.radii()
	if outer <= 0 || outer > 1 || inner < 0 || inner >= outer {
		return errs.Config("coord", errs.ErrUnsupported, "radius must satisfy 0 <= innerRadius < radius <= 1")
	}
	start, end := c.angles()
	if c.typ == TypeHelix && math.Abs(end-start) <= 2*math.Pi {
		return errs.Config("coord", errs.ErrHelixSpan)
	}
	if start == end {
		return errs.Config("coord", errs.ErrUnsupported, "startAngle equals endAngle")
	}
	return nil
}

func (c *Coordinate) radii() (outer, inner float64) {
	outer = c.cfg.Radius
	if outer == 0 {
		outer = 1
	}
	return outer, c.cfg.InnerRadius
}

func (c *Coordinate) angles() (start, end float64) {
	switch c.typ {
	case TypeTheta:
		start, end = 0, 2*math.Pi
	case TypeHelix:
		start, end = 1.25*math.Pi, 7.25*math.Pi
	default:
		start, end = -math.Pi/2, 3*math.Pi/2
	}
	if c.cfg.StartAngle != nil {
		start = *c.cfg.StartAngle
	}
	if c.cfg.EndAngle != nil {
		end = *c.cfg.EndAngle
	}
	return start, end
}

func reflectFactors(axis string) (fx, fy float64, ok bool) {
	switch strings.ToLower(axis) {
	case "x":
		return -1, 1, true
	case "y":
		return 1, -1, true
	case "xy", "yx":
		return -1, -1, true
	}
	return 0, 0, false
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

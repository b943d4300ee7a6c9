package coord

import (
	"math"

	"golang.org/x/image/math/f64"

	"gochart/internal/geom"
)

// Matrices are f64.Aff3 in row-major order with an implicit [0 0 1] row:
// x' = m[0]x + m[1]y + m[2], y' = m[3]x + m[4]y + m[5].

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// mul returns a·b, the transform that applies b first.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func apply(m f64.Aff3, p geom.Point) geom.Point {
	return geom.Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// about conjugates the linear map lin with a translation to c, so that it
// acts around c instead of the origin.
func about(c geom.Point, lin f64.Aff3) f64.Aff3 {
	to := f64.Aff3{1, 0, c.X, 0, 1, c.Y}
	from := f64.Aff3{1, 0, -c.X, 0, 1, -c.Y}
	return mul(to, mul(lin, from))
}

func rotation(rad float64) f64.Aff3 {
	sin, cos := math.Sincos(rad)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

func scaling(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

// opMatrices returns the forward and inverse linear maps of op. Transpose
// has none: it is handled in normalized space.
func opMatrices(op Op) (fwd, inv f64.Aff3, ok bool) {
	switch op.Kind {
	case OpRotate:
		rad := DegToRad(op.Angle)
		return rotation(rad), rotation(-rad), true
	case OpScale:
		return scaling(op.SX, op.SY), scaling(1/op.SX, 1/op.SY), true
	case OpReflect:
		fx, fy, _ := reflectFactors(op.Axis)
		return scaling(fx, fy), scaling(fx, fy), true
	}
	return identity, identity, false
}

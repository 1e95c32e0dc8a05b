package math

import "github.com/chewxy/math32"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Axis vectors.
var (
	XAxis = Vec3{1, 0, 0}
	YAxis = Vec3{0, 1, 0}
	ZAxis = Vec3{0, 0, 1}
)

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// AddScalar adds s to every component.
func (v Vec3) AddScalar(s float32) Vec3 {
	return Vec3{v.X + s, v.Y + s, v.Z + s}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// SubScalar subtracts s from every component.
func (v Vec3) SubScalar(s float32) Vec3 {
	return Vec3{v.X - s, v.Y - s, v.Z - s}
}

// Mul returns the component-wise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns the component-wise quotient.
func (v Vec3) Div(other Vec3) Vec3 {
	return Vec3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

// DivScalar returns v / s.
func (v Vec3) DivScalar(s float32) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

// Negate returns -v.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize divides v by its length. A zero vector yields NaN components;
// use TryNormalize when the input may be degenerate.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// TryNormalize returns the unit vector or ErrZeroLength.
func (v Vec3) TryNormalize() (Vec3, error) {
	l := v.Length()
	if l == 0 {
		return v, ErrZeroLength
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}, nil
}

// SetNormalized normalizes v in place.
func (v *Vec3) SetNormalized() {
	*v = v.Normalize()
}

// Rotate rotates v by angle degrees around axis using the sandwich
// product q·v·q*. axis is expected to be unit length.
func (v Vec3) Rotate(angle float32, axis Vec3) Vec3 {
	q := QuatFromAxisAngle(axis, angle)
	w := q.MulVec3(v).Mul(q.Conjugate())
	return Vec3{w.X, w.Y, w.Z}
}

// SetRotated rotates v in place.
func (v *Vec3) SetRotated(angle float32, axis Vec3) {
	*v = v.Rotate(angle, axis)
}

// Abs returns the component-wise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)}
}

// Equals reports exact component equality.
func (v Vec3) Equals(other Vec3) bool {
	return v == other
}

// ApproxEqual reports whether every component is within eps of other.
func (v Vec3) ApproxEqual(other Vec3, eps float32) bool {
	return ApproxEqual(v.X, other.X, eps) &&
		ApproxEqual(v.Y, other.Y, eps) &&
		ApproxEqual(v.Z, other.Z, eps)
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Lerp linearly interpolates between v and other.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return v.Add(other.Sub(v).Scale(t))
}

// XY returns the XY components.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// XZ returns the XZ components.
func (v Vec3) XZ() Vec2 {
	return Vec2{v.X, v.Z}
}

package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// AddScalar adds s to every component.
func (v Vec2) AddScalar(s float32) Vec2 {
	return Vec2{v.X + s, v.Y + s}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// SubScalar subtracts s from every component.
func (v Vec2) SubScalar(s float32) Vec2 {
	return Vec2{v.X - s, v.Y - s}
}

// Mul returns the component-wise product.
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Div returns the component-wise quotient.
func (v Vec2) Div(other Vec2) Vec2 {
	return Vec2{v.X / other.X, v.Y / other.Y}
}

// DivScalar returns v / s.
func (v Vec2) DivScalar(s float32) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize divides v by its length. A zero vector yields NaN components;
// use TryNormalize when the input may be degenerate.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	return Vec2{v.X / l, v.Y / l}
}

// TryNormalize returns the unit vector or ErrZeroLength.
func (v Vec2) TryNormalize() (Vec2, error) {
	l := v.Length()
	if l == 0 {
		return v, ErrZeroLength
	}
	return Vec2{v.X / l, v.Y / l}, nil
}

// SetNormalized normalizes v in place.
func (v *Vec2) SetNormalized() {
	*v = v.Normalize()
}

// Rotate rotates v counter-clockwise by angle degrees.
func (v Vec2) Rotate(angle float32) Vec2 {
	rad := ToRadians(angle)
	c, s := math32.Cos(rad), math32.Sin(rad)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Abs returns the component-wise absolute value.
func (v Vec2) Abs() Vec2 {
	return Vec2{math32.Abs(v.X), math32.Abs(v.Y)}
}

// Equals reports exact component equality.
func (v Vec2) Equals(other Vec2) bool {
	return v == other
}

// Lerp linearly interpolates between v and other.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return Vec2{
		v.X + (other.X-v.X)*t,
		v.Y + (other.Y-v.Y)*t,
	}
}

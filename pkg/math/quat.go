package math

import "github.com/chewxy/math32"

// Quat is a quaternion. W is the scalar part. A quaternion with W == 0
// embeds a pure vector.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle builds a rotation of angle degrees around axis.
// The half-angle sine and cosine are used, so axis must be unit length
// for the result to be a unit quaternion.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	half := ToRadians(angle / 2)
	s, c := math32.Sin(half), math32.Cos(half)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: c}
}

// Length returns the magnitude.
func (q Quat) Length() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize divides q by its length. A zero quaternion yields NaN components.
func (q Quat) Normalize() Quat {
	return q.DivScalar(q.Length())
}

// TryNormalize returns the unit quaternion or ErrZeroLength.
func (q Quat) TryNormalize() (Quat, error) {
	l := q.Length()
	if l == 0 {
		return q, ErrZeroLength
	}
	return q.DivScalar(l), nil
}

// Conjugate returns (-x, -y, -z, w).
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Mul returns the Hamilton product q * r.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.X*r.W + q.W*r.X + q.Y*r.Z - q.Z*r.Y,
		Y: q.Y*r.W + q.W*r.Y + q.Z*r.X - q.X*r.Z,
		Z: q.Z*r.W + q.W*r.Z + q.X*r.Y - q.Y*r.X,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// MulVec3 returns q * (v, 0).
func (q Quat) MulVec3(v Vec3) Quat {
	return Quat{
		X: q.W*v.X + q.Y*v.Z - q.Z*v.Y,
		Y: q.W*v.Y + q.Z*v.X - q.X*v.Z,
		Z: q.W*v.Z + q.X*v.Y - q.Y*v.X,
		W: -q.X*v.X - q.Y*v.Y - q.Z*v.Z,
	}
}

// Scale multiplies every component by s.
func (q Quat) Scale(s float32) Quat {
	return Quat{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

// DivScalar divides every component by s.
func (q Quat) DivScalar(s float32) Quat {
	return Quat{q.X / s, q.Y / s, q.Z / s, q.W / s}
}

// Add returns q + r.
func (q Quat) Add(r Quat) Quat {
	return Quat{q.X + r.X, q.Y + r.Y, q.Z + r.Z, q.W + r.W}
}

// Sub returns q - r.
func (q Quat) Sub(r Quat) Quat {
	return Quat{q.X - r.X, q.Y - r.Y, q.Z - r.Z, q.W - r.W}
}

// Dot returns the 4D dot product.
func (q Quat) Dot(r Quat) float32 {
	return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
}

// XYZ returns the vector part.
func (q Quat) XYZ() Vec3 {
	return Vec3{q.X, q.Y, q.Z}
}

// Equals reports exact component equality.
func (q Quat) Equals(r Quat) bool {
	return q == r
}

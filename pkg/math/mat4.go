package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix indexed [row][col]. Memory is row-major, so it is
// uploaded to OpenGL with transpose enabled.
//
// Vectors are columns: Mul(a, b) applies b first, then a.
type Mat4 [4][4]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Zero returns the zero matrix.
func Zero() Mat4 {
	return Mat4{}
}

// Translation returns a translation matrix.
func Translation(t Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, t.X},
		{0, 1, 0, t.Y},
		{0, 0, 1, t.Z},
		{0, 0, 0, 1},
	}
}

// Scaling returns a scale matrix.
func Scaling(s Vec3) Mat4 {
	return Mat4{
		{s.X, 0, 0, 0},
		{0, s.Y, 0, 0},
		{0, 0, s.Z, 0},
		{0, 0, 0, 1},
	}
}

// RotationX returns a rotation of deg degrees around the X axis.
func RotationX(deg float32) Mat4 {
	s, c := sincos(deg)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationY returns a rotation of deg degrees around the Y axis.
func RotationY(deg float32) Mat4 {
	s, c := sincos(deg)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationZ returns a rotation of deg degrees around the Z axis.
func RotationZ(deg float32) Mat4 {
	s, c := sincos(deg)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Rotation returns the Euler rotation Rz·Ry·Rx for angles in degrees.
func Rotation(euler Vec3) Mat4 {
	return RotationZ(euler.Z).Mul(RotationY(euler.Y).Mul(RotationX(euler.X)))
}

// Orthographic2D maps pixel coordinates (0,0)-(width,height) to clip space.
func Orthographic2D(width, height float32) Mat4 {
	return Mat4{
		{2 / width, 0, 0, -1},
		{0, 2 / height, 0, -1},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Orthographic returns an orthographic projection for the given box.
func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	return Mat4{
		{2 / (right - left), 0, 0, -(right + left) / (right - left)},
		{0, 2 / (top - bottom), 0, -(top + bottom) / (top - bottom)},
		{0, 0, 2 / (far - near), -(far + near) / (far - near)},
		{0, 0, 0, 1},
	}
}

// Perspective returns a left-handed perspective projection. fovY is the
// vertical field of view in degrees; the camera looks down +Z and depth
// maps to [0, w] in clip space.
//
// m[3][3] is 0 and m[2][3] is negated on purpose: w carries the view depth
// and the near plane maps to 0.
func Perspective(fovY, width, height, near, far float32) Mat4 {
	aspect := width / height
	tanFOV := math32.Tan(ToRadians(fovY / 2))
	depth := far - near
	return Mat4{
		{1 / (tanFOV * aspect), 0, 0, 0},
		{0, 1 / tanFOV, 0, 0},
		{0, 0, far / depth, -far * near / depth},
		{0, 0, 1, 0},
	}
}

// View returns the camera basis matrix for the given forward and up
// directions. Rows are right, up and forward; right = up × forward.
func View(forward, up Vec3) Mat4 {
	f := forward
	r := up.Cross(f)
	u := up
	return Mat4{
		{r.X, r.Y, r.Z, 0},
		{u.X, u.Y, u.Z, 0},
		{f.X, f.Y, f.Z, 0},
		{0, 0, 0, 1},
	}
}

// Get returns the element at row, col.
func (m Mat4) Get(row, col int) float32 {
	return m[row][col]
}

// Set sets the element at row, col.
func (m *Mat4) Set(row, col int, v float32) {
	m[row][col] = v
}

// Row returns row i as a quaternion-shaped 4-vector.
func (m Mat4) Row(i int) Quat {
	return Quat{m[i][0], m[i][1], m[i][2], m[i][3]}
}

// Col returns column j as a quaternion-shaped 4-vector.
func (m Mat4) Col(j int) Quat {
	return Quat{m[0][j], m[1][j], m[2][j], m[3][j]}
}

// Mul returns m · other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[i][0]*other[0][j] +
				m[i][1]*other[1][j] +
				m[i][2]*other[2][j] +
				m[i][3]*other[3][j]
		}
	}
	return r
}

// MulVec4 returns m · (x, y, z, w) packed in a Quat.
func (m Mat4) MulVec4(v Quat) Quat {
	return Quat{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		W: m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// MulQuat treats q as a homogeneous 4-vector.
func (m Mat4) MulQuat(q Quat) Quat {
	return m.MulVec4(q)
}

// TransformPoint transforms p with w = 1 and performs the perspective divide.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	v := m.MulVec4(Quat{p.X, p.Y, p.Z, 1})
	if v.W != 0 && v.W != 1 {
		return Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W}
	}
	return Vec3{v.X, v.Y, v.Z}
}

// Add returns the element-wise sum.
func (m Mat4) Add(other Mat4) Mat4 {
	for i := range m {
		for j := range m[i] {
			m[i][j] += other[i][j]
		}
	}
	return m
}

// Sub returns the element-wise difference.
func (m Mat4) Sub(other Mat4) Mat4 {
	for i := range m {
		for j := range m[i] {
			m[i][j] -= other[i][j]
		}
	}
	return m
}

// Scale multiplies every element by s.
func (m Mat4) Scale(s float32) Mat4 {
	for i := range m {
		for j := range m[i] {
			m[i][j] *= s
		}
	}
	return m
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// 2x2 sub-determinants shared by Determinant and Invert.
func (m Mat4) minors() (s, c [6]float32) {
	s[0] = m[0][0]*m[1][1] - m[1][0]*m[0][1]
	s[1] = m[0][0]*m[1][2] - m[1][0]*m[0][2]
	s[2] = m[0][0]*m[1][3] - m[1][0]*m[0][3]
	s[3] = m[0][1]*m[1][2] - m[1][1]*m[0][2]
	s[4] = m[0][1]*m[1][3] - m[1][1]*m[0][3]
	s[5] = m[0][2]*m[1][3] - m[1][2]*m[0][3]

	c[5] = m[2][2]*m[3][3] - m[3][2]*m[2][3]
	c[4] = m[2][1]*m[3][3] - m[3][1]*m[2][3]
	c[3] = m[2][1]*m[3][2] - m[3][1]*m[2][2]
	c[2] = m[2][0]*m[3][3] - m[3][0]*m[2][3]
	c[1] = m[2][0]*m[3][2] - m[3][0]*m[2][2]
	c[0] = m[2][0]*m[3][1] - m[3][0]*m[2][1]
	return s, c
}

// Determinant returns the determinant.
func (m Mat4) Determinant() float32 {
	s, c := m.minors()
	return s[0]*c[5] - s[1]*c[4] + s[2]*c[3] + s[3]*c[2] - s[4]*c[1] + s[5]*c[0]
}

// Invert returns the inverse computed from the adjugate. A singular
// matrix returns ErrSingularMatrix and the receiver unchanged.
func (m Mat4) Invert() (Mat4, error) {
	s, c := m.minors()
	det := s[0]*c[5] - s[1]*c[4] + s[2]*c[3] + s[3]*c[2] - s[4]*c[1] + s[5]*c[0]
	if det == 0 {
		return m, ErrSingularMatrix
	}
	inv := 1 / det

	var r Mat4
	r[0][0] = (m[1][1]*c[5] - m[1][2]*c[4] + m[1][3]*c[3]) * inv
	r[0][1] = (-m[0][1]*c[5] + m[0][2]*c[4] - m[0][3]*c[3]) * inv
	r[0][2] = (m[3][1]*s[5] - m[3][2]*s[4] + m[3][3]*s[3]) * inv
	r[0][3] = (-m[2][1]*s[5] + m[2][2]*s[4] - m[2][3]*s[3]) * inv

	r[1][0] = (-m[1][0]*c[5] + m[1][2]*c[2] - m[1][3]*c[1]) * inv
	r[1][1] = (m[0][0]*c[5] - m[0][2]*c[2] + m[0][3]*c[1]) * inv
	r[1][2] = (-m[3][0]*s[5] + m[3][2]*s[2] - m[3][3]*s[1]) * inv
	r[1][3] = (m[2][0]*s[5] - m[2][2]*s[2] + m[2][3]*s[1]) * inv

	r[2][0] = (m[1][0]*c[4] - m[1][1]*c[2] + m[1][3]*c[0]) * inv
	r[2][1] = (-m[0][0]*c[4] + m[0][1]*c[2] - m[0][3]*c[0]) * inv
	r[2][2] = (m[3][0]*s[4] - m[3][1]*s[2] + m[3][3]*s[0]) * inv
	r[2][3] = (-m[2][0]*s[4] + m[2][1]*s[2] - m[2][3]*s[0]) * inv

	r[3][0] = (-m[1][0]*c[3] + m[1][1]*c[1] - m[1][2]*c[0]) * inv
	r[3][1] = (m[0][0]*c[3] - m[0][1]*c[1] + m[0][2]*c[0]) * inv
	r[3][2] = (-m[3][0]*s[3] + m[3][1]*s[1] - m[3][2]*s[0]) * inv
	r[3][3] = (m[2][0]*s[3] - m[2][1]*s[1] + m[2][2]*s[0]) * inv

	return r, nil
}

// Equals reports exact element equality.
func (m Mat4) Equals(other Mat4) bool {
	return m == other
}

// ApproxEqual reports whether every element is within eps of other.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !ApproxEqual(m[i][j], other[i][j], eps) {
				return false
			}
		}
	}
	return true
}

// Float32s returns the elements in row-major order.
func (m Mat4) Float32s() [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		copy(out[i*4:], m[i][:])
	}
	return out
}

func sincos(deg float32) (float32, float32) {
	rad := ToRadians(deg)
	return math32.Sin(rad), math32.Cos(rad)
}

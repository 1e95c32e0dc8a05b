package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toMGL converts to mathgl's column-major layout.
func toMGL(m Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c*4+r] = m[r][c]
		}
	}
	return out
}

func fromMGL(m mgl32.Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = m[c*4+r]
		}
	}
	return out
}

func sampleMatrices() []Mat4 {
	return []Mat4{
		Identity(),
		Translation(Vec3{5, -3, 2}),
		Scaling(Vec3{2, 3, 4}),
		Rotation(Vec3{30, 45, 60}),
		Translation(Vec3{1, 2, 3}).Mul(Scaling(Vec3{2, 2, 2})).Mul(Rotation(Vec3{10, 20, 30})),
		Perspective(70, 1280, 720, 0.1, 100),
		View(Vec3{0, 0, 1}, Vec3{0, 1, 0}).Mul(Translation(Vec3{-4, -5, -6})),
		{
			{4, 7, 2, 3},
			{0, 5, 0, 1},
			{1, 0, 3, 2},
			{2, 1, 0, 6},
		},
	}
}

func TestIdentityIsNeutral(t *testing.T) {
	for _, m := range sampleMatrices() {
		assert.Equal(t, m, Identity().Mul(m))
		assert.Equal(t, m, m.Mul(Identity()))
	}
}

func TestTranslationColumn(t *testing.T) {
	m := Translation(Vec3{5, 10, 15})
	assert.Equal(t, float32(5), m[0][3])
	assert.Equal(t, float32(10), m[1][3])
	assert.Equal(t, float32(15), m[2][3])
	assert.Equal(t, Vec3{6, 11, 16}, m.TransformPoint(Vec3{1, 1, 1}))
}

func TestRotationOrderIsZYX(t *testing.T) {
	euler := Vec3{30, 45, 60}
	want := RotationZ(euler.Z).Mul(RotationY(euler.Y)).Mul(RotationX(euler.X))
	assert.True(t, Rotation(euler).ApproxEqual(want, Epsilon))
}

func TestRotationMatchesVectorRotate(t *testing.T) {
	p := Vec3{1, 2, 3}
	tests := []struct {
		name string
		m    Mat4
		axis Vec3
		deg  float32
	}{
		{"x", RotationX(33), XAxis, 33},
		{"y", RotationY(-71), YAxis, -71},
		{"z", RotationZ(120), ZAxis, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(p)
			want := p.Rotate(tt.deg, tt.axis)
			assert.True(t, got.ApproxEqual(want, 1e-5), "got %v want %v", got, want)
		})
	}
}

func TestInvertProducesIdentity(t *testing.T) {
	for i, m := range sampleMatrices() {
		inv, err := m.Invert()
		require.NoError(t, err, "matrix %d", i)
		assert.True(t, inv.Mul(m).ApproxEqual(Identity(), 1e-4), "inv*M for matrix %d", i)
		assert.True(t, m.Mul(inv).ApproxEqual(Identity(), 1e-4), "M*inv for matrix %d", i)
	}
}

func TestInvertMatchesMathGL(t *testing.T) {
	for i, m := range sampleMatrices() {
		inv, err := m.Invert()
		require.NoError(t, err)
		want := fromMGL(toMGL(m).Inv())
		assert.True(t, inv.ApproxEqual(want, 1e-3), "matrix %d: got %v want %v", i, inv, want)
	}
}

func TestInvertSingular(t *testing.T) {
	singular := []Mat4{
		Zero(),
		Scaling(Vec3{1, 0, 1}),
		{
			{1, 2, 3, 4},
			{2, 4, 6, 8},
			{0, 1, 0, 1},
			{3, 1, 4, 1},
		},
	}
	for _, m := range singular {
		orig := m
		got, err := m.Invert()
		require.ErrorIs(t, err, ErrSingularMatrix)
		assert.Equal(t, orig, m, "receiver must not change")
		assert.Equal(t, orig, got)
	}
}

func TestDeterminantMatchesMathGL(t *testing.T) {
	for _, m := range sampleMatrices() {
		assert.InDelta(t, toMGL(m).Det(), m.Determinant(), 1e-3)
	}
}

func TestTranspose(t *testing.T) {
	m := Mat4{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	tr := m.Transpose()
	assert.Equal(t, float32(5), tr[0][1])
	assert.Equal(t, float32(4), tr[3][0])
	assert.Equal(t, m, tr.Transpose())
}

func TestMulMatchesMathGL(t *testing.T) {
	ms := sampleMatrices()
	for i := 0; i+1 < len(ms); i++ {
		got := ms[i].Mul(ms[i+1])
		want := fromMGL(toMGL(ms[i]).Mul4(toMGL(ms[i+1])))
		assert.True(t, got.ApproxEqual(want, 1e-3), "pair %d", i)
	}
}

func TestPerspectiveKeepsForwardPointInClip(t *testing.T) {
	vp := Perspective(70, 1280, 720, 0.1, 10000).Mul(
		View(ZAxis, YAxis).Mul(Translation(Vec3{})),
	)
	clip := vp.MulVec4(Quat{0, 0, 5, 1})

	require.Greater(t, clip.W, float32(0))
	assert.LessOrEqual(t, abs(clip.X), clip.W)
	assert.LessOrEqual(t, abs(clip.Y), clip.W)
	assert.GreaterOrEqual(t, clip.Z, float32(0))
	assert.LessOrEqual(t, clip.Z, clip.W)
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(70, 1280, 720, 0.1, 10000)
	near := p.TransformPoint(Vec3{0, 0, 0.1})
	far := p.TransformPoint(Vec3{0, 0, 10000})
	assert.InDelta(t, 0, near.Z, 1e-4)
	assert.InDelta(t, 1, far.Z, 1e-4)
}

func TestPerspectiveProjectiveRow(t *testing.T) {
	p := Perspective(70, 1280, 720, 0.1, 10000)
	assert.Equal(t, [4]float32{0, 0, 1, 0}, [4]float32(p[3]))
	assert.Less(t, p[2][3], float32(0))
	assert.InDelta(t, -10000*0.1/(10000-0.1), p[2][3], 1e-6)
}

func TestViewBasis(t *testing.T) {
	v := View(ZAxis, YAxis)
	assert.Equal(t, Identity(), v)

	v = View(XAxis, YAxis)
	// Looking down +X, a point on +X ends up straight ahead.
	assert.True(t, v.TransformPoint(Vec3{3, 0, 0}).ApproxEqual(Vec3{0, 0, 3}, 1e-6))
}

func TestOrthographic2D(t *testing.T) {
	m := Orthographic2D(800, 600)
	assert.True(t, m.TransformPoint(Vec3{0, 0, 0}).ApproxEqual(Vec3{-1, -1, 0}, 1e-6))
	assert.True(t, m.TransformPoint(Vec3{800, 600, 0}).ApproxEqual(Vec3{1, 1, 0}, 1e-6))
}

func TestOrthographic(t *testing.T) {
	m := Orthographic(-10, 10, -5, 5, 1, 11)
	assert.True(t, m.TransformPoint(Vec3{10, 5, 11}).ApproxEqual(Vec3{1, 1, 1}, 1e-6))
	assert.True(t, m.TransformPoint(Vec3{-10, -5, 1}).ApproxEqual(Vec3{-1, -1, -1}, 1e-6))
}

func TestFloat32sRowMajor(t *testing.T) {
	m := Translation(Vec3{7, 8, 9})
	f := m.Float32s()
	assert.Equal(t, float32(7), f[3])
	assert.Equal(t, float32(8), f[7])
	assert.Equal(t, float32(9), f[11])
}

func TestElementwise(t *testing.T) {
	a := Identity()
	b := Identity().Scale(2)
	assert.Equal(t, Identity().Scale(3), a.Add(b))
	assert.Equal(t, Identity().Scale(-1), a.Sub(b))
	assert.Equal(t, Identity(), a, "Add/Sub must not mutate the receiver")
}

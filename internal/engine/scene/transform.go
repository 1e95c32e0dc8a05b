package scene

import "github.com/Faultbox/vortex/pkg/math"

// Transform is the translation, rotation and scale of an object. Matrices
// are derived from the current fields on every call, so direct field
// writes are visible immediately.
type Transform struct {
	Translation math.Vec3
	// Rotation holds Euler angles in degrees.
	Rotation math.Vec3
	Scaling  math.Vec3
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{Scaling: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// TranslationMatrix returns T.
func (t *Transform) TranslationMatrix() math.Mat4 {
	return math.Translation(t.Translation)
}

// RotationMatrix returns R.
func (t *Transform) RotationMatrix() math.Mat4 {
	return math.Rotation(t.Rotation)
}

// ScalingMatrix returns S.
func (t *Transform) ScalingMatrix() math.Mat4 {
	return math.Scaling(t.Scaling)
}

// ModelMatrix returns T·S·R.
func (t *Transform) ModelMatrix() math.Mat4 {
	return t.TranslationMatrix().Mul(t.ScalingMatrix().Mul(t.RotationMatrix()))
}

// MVP returns viewProjection·Model.
func (t *Transform) MVP(viewProjection math.Mat4) math.Mat4 {
	return viewProjection.Mul(t.ModelMatrix())
}

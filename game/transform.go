package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/whisp/input"
)

// Transform tuning.
const (
	MoveSpeed   = 0.8  // NDC units per second
	RotateSpeed = 2.0  // radians per second while the right button is held
	ScaleStep   = 1.15 // target scale factor per left click
	MaxScale    = 3.0  // target scale above this resets to 1
	Smoothing   = 12.0 // convergence rate of scale and angle
	Bound       = 0.9  // |x| and |y| limit
)

// Transform is the 2D pose of the drawable. Position follows input
// directly; scale and angle ease toward their targets.
type Transform struct {
	X, Y        float32
	Scale       float32
	Angle       float32
	TargetScale float32
	TargetAngle float32

	click input.Edge
}

// NewTransform returns the identity pose.
func NewTransform() *Transform {
	return &Transform{Scale: 1, TargetScale: 1}
}

// SmoothFactor returns 1 - exp(-k*dt), the fraction of the remaining
// distance covered in dt.
func SmoothFactor(k, dt float32) float32 {
	return 1 - float32(math.Exp(float64(-k*dt)))
}

// Update applies one step of input.
func (t *Transform) Update(in *input.State, dt float32) {
	if in.KeyDown(gpucontext.KeyLeft) {
		t.X -= MoveSpeed * dt
	}
	if in.KeyDown(gpucontext.KeyRight) {
		t.X += MoveSpeed * dt
	}
	if in.KeyDown(gpucontext.KeyUp) {
		t.Y += MoveSpeed * dt
	}
	if in.KeyDown(gpucontext.KeyDown) {
		t.Y -= MoveSpeed * dt
	}

	if t.click.Rising(in.ButtonDown(gpucontext.MouseButtonLeft)) {
		t.TargetScale *= ScaleStep
		if t.TargetScale > MaxScale {
			t.TargetScale = 1
		}
	}
	if in.ButtonDown(gpucontext.MouseButtonRight) {
		t.TargetAngle += RotateSpeed * dt
	}

	a := SmoothFactor(Smoothing, dt)
	t.Scale += (t.TargetScale - t.Scale) * a
	t.Angle += (t.TargetAngle - t.Angle) * a

	t.X = mgl32.Clamp(t.X, -Bound, Bound)
	t.Y = mgl32.Clamp(t.Y, -Bound, Bound)
}

// Matrix returns the column-major model matrix translate * rotateZ *
// scale, in the layout the vertex shader's uniform expects.
func (t *Transform) Matrix() [16]float32 {
	m := mgl32.Translate3D(t.X, t.Y, 0).
		Mul4(mgl32.HomogRotate3DZ(t.Angle)).
		Mul4(mgl32.Scale3D(t.Scale, t.Scale, 1))
	return [16]float32(m)
}

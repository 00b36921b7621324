package nightsky

import "github.com/spaghettifunk/kiki/engine/math"

const (
	GrowthFactor float32 = 1.001
	ShrinkFactor float32 = 0.999
	// Pulse half period, in frames.
	MaxFrame int = 10
	// Moon rotation per frame, in radians.
	RotAngle float32 = 0.05
	// Units per second squared, see Animator.drift.
	DriftSpeed float32 = 0.005
)

// PhaseState is the animation state carried from one frame to the next.
type PhaseState struct {
	Growing bool
	// Always in [0, MaxFrame).
	FrameCounter  int
	Fly           float32
	PreviousTicks float32
}

// Animator advances the scene transforms once per frame. Every rule composes
// onto the current matrix, so transforms accumulate and are never reset.
type Animator struct {
	State PhaseState
	scene *Scene
}

func NewAnimator(scene *Scene) *Animator {
	return &Animator{
		State: PhaseState{Growing: true},
		scene: scene,
	}
}

// Update runs the pulse, spin and drift rules with elapsed, the seconds since
// the loop started.
func (a *Animator) Update(elapsed float32) {
	a.pulse()
	a.spin()
	a.drift(elapsed)
}

// pulse scales the shared star matrix up for MaxFrame frames, then down for
// MaxFrame frames.
func (a *Animator) pulse() {
	a.State.FrameCounter++
	factor := ShrinkFactor
	if a.State.Growing {
		factor = GrowthFactor
	}
	if a.State.FrameCounter >= MaxFrame {
		a.State.Growing = !a.State.Growing
		a.State.FrameCounter = 0
	}
	a.scene.StarModel = a.scene.StarModel.Scale(math.NewVec3(factor, factor, 1))
}

// spin turns the moon by a fixed angle per frame, whatever the frame time.
func (a *Animator) spin() {
	a.scene.MoonModel = a.scene.MoonModel.Rotate(RotAngle, math.NewVec3Back())
}

// drift pushes kiki left. The offset grows with time and is applied on top
// of the previous translation every frame, so kiki accelerates.
func (a *Animator) drift(elapsed float32) {
	delta := elapsed - a.State.PreviousTicks
	a.State.PreviousTicks = elapsed
	a.State.Fly -= DriftSpeed * delta
	a.scene.KikiModel = a.scene.KikiModel.Translate(math.NewVec3(a.State.Fly, 0, 0))
}

package nightsky

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/kiki/engine/math"
)

const tolerance = 1e-6

func near(a, b float32) bool {
	d := a - b
	return d < tolerance && d > -tolerance
}

// scaleX reads the x scale of a matrix made of scales only.
func scaleX(m math.Mat4) float32 {
	return m.Data[0]
}

func TestPulsePeriod(t *testing.T) {
	scene := NewScene()
	a := NewAnimator(scene)

	var factors []float32
	prev := scaleX(scene.StarModel)
	for i := 0; i < 4*MaxFrame; i++ {
		a.Update(0)
		cur := scaleX(scene.StarModel)
		factors = append(factors, cur/prev)
		prev = cur

		if a.State.FrameCounter < 0 || a.State.FrameCounter >= MaxFrame {
			t.Fatalf("frame counter out of range: %d", a.State.FrameCounter)
		}
	}

	for i, f := range factors {
		growing := (i/MaxFrame)%2 == 0
		expected := ShrinkFactor
		if growing {
			expected = GrowthFactor
		}
		if !near(f, expected) {
			t.Errorf("call %d: expected factor %v, got %v", i+1, expected, f)
		}
	}
}

func TestPulseFlipsOncePerPeriod(t *testing.T) {
	a := NewAnimator(NewScene())
	flips := 0
	growing := a.State.Growing
	for i := 0; i < MaxFrame; i++ {
		a.Update(0)
		if a.State.Growing != growing {
			flips++
			growing = a.State.Growing
		}
	}
	if flips != 1 || a.State.Growing {
		t.Errorf("expected exactly one flip to shrinking, got %d flips (growing=%v)", flips, a.State.Growing)
	}
	if a.State.FrameCounter != 0 {
		t.Errorf("expected counter to wrap to 0, got %d", a.State.FrameCounter)
	}
}

func TestPulseKeepsZScale(t *testing.T) {
	scene := NewScene()
	a := NewAnimator(scene)
	for i := 0; i < 7; i++ {
		a.Update(0)
	}
	if scene.StarModel.Data[10] != 1 {
		t.Errorf("expected z scale 1, got %v", scene.StarModel.Data[10])
	}
	if scene.StarModel.Data[0] != scene.StarModel.Data[5] {
		t.Errorf("expected uniform x/y scale, got %v and %v", scene.StarModel.Data[0], scene.StarModel.Data[5])
	}
}

func TestSpinIgnoresElapsedTime(t *testing.T) {
	fast, slow := NewScene(), NewScene()
	af, as := NewAnimator(fast), NewAnimator(slow)
	for i := 1; i <= 5; i++ {
		af.Update(float32(i) * 0.001)
		as.Update(float32(i) * 2)
	}
	if !fast.MoonModel.Compare(slow.MoonModel, tolerance) {
		t.Error("expected the moon to turn by frame, not by time")
	}
	if got := fast.MoonModel.RotationZ(); !near(got, 5*RotAngle) {
		t.Errorf("expected %v rad, got %v", 5*RotAngle, got)
	}
}

func TestDriftCompounds(t *testing.T) {
	scene := NewScene()
	a := NewAnimator(scene)
	times := []float32{0.05, 0.2, 0.3, 0.75}

	var fly, x float32
	var prev float32
	expected := mgl32.Ident4()
	for _, tm := range times {
		a.Update(tm)
		fly -= DriftSpeed * (tm - prev)
		prev = tm
		x += fly
		expected = expected.Mul4(mgl32.Translate3D(fly, 0, 0))

		if !near(a.State.Fly, fly) {
			t.Errorf("t=%v: expected accumulator %v, got %v", tm, fly, a.State.Fly)
		}
		if got := scene.KikiModel.Translation().X; !near(got, x) {
			t.Errorf("t=%v: expected x %v, got %v", tm, x, got)
		}
	}
	for i := range expected {
		if !near(scene.KikiModel.Data[i], expected[i]) {
			t.Fatalf("expected %v, got %v", expected, scene.KikiModel.Data)
		}
	}
}

func TestDeterminism(t *testing.T) {
	times := []float32{0, 0.016, 0.033, 0.05, 0.4, 0.41, 1.7}
	run := func() *Scene {
		scene := NewScene()
		a := NewAnimator(scene)
		for i := 0; i < 50; i++ {
			for _, tm := range times {
				a.Update(tm + float32(i))
			}
		}
		return scene
	}
	first, second := run(), run()
	if first.StarModel != second.StarModel || first.MoonModel != second.MoonModel || first.KikiModel != second.KikiModel {
		t.Error("expected bit-identical matrices")
	}
}

func TestThreeFrames(t *testing.T) {
	scene := NewScene()
	a := NewAnimator(scene)
	for _, tm := range []float32{0.0, 0.1, 0.2} {
		a.Update(tm)
	}

	if a.State.FrameCounter != 3 || !a.State.Growing {
		t.Errorf("expected counter 3 while growing, got %d (growing=%v)", a.State.FrameCounter, a.State.Growing)
	}
	wantScale := GrowthFactor * GrowthFactor * GrowthFactor
	if !near(scaleX(scene.StarModel), wantScale) {
		t.Errorf("expected star scale %v, got %v", wantScale, scaleX(scene.StarModel))
	}
	if !near(scene.MoonModel.RotationZ(), 0.15) {
		t.Errorf("expected moon at 0.15 rad, got %v", scene.MoonModel.RotationZ())
	}
	if !near(a.State.Fly, -0.001) {
		t.Errorf("expected accumulator -0.001, got %v", a.State.Fly)
	}
	// 0 + -0.0005 + -0.001
	if !near(scene.KikiModel.Translation().X, -0.0015) {
		t.Errorf("expected kiki x -0.0015, got %v", scene.KikiModel.Translation().X)
	}
}

func TestStarsShareOneMatrix(t *testing.T) {
	scene := NewScene()
	a := NewAnimator(scene)
	a.Update(0.5)
	for _, s := range scene.Stars {
		if s.Model != &scene.StarModel {
			t.Fatalf("expected %s to use the shared star matrix", s.Name)
		}
	}
	if *scene.Moon.Model != scene.MoonModel || *scene.Kiki.Model != scene.KikiModel {
		t.Error("expected entities to see the animated matrices")
	}
}

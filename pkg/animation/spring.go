package animation

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SpringDescription describes a damped harmonic oscillator in the
// mass/stiffness/damping form used by mobile animation runtimes.
type SpringDescription struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

// AngularFrequency returns the undamped angular frequency sqrt(k/m) in rad/s.
func (d SpringDescription) AngularFrequency() float64 {
	if d.Mass <= 0 || d.Stiffness <= 0 {
		return 0
	}
	return math.Sqrt(d.Stiffness / d.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)). Below 1 the spring oscillates.
func (d SpringDescription) DampingRatio() float64 {
	if d.Mass <= 0 || d.Stiffness <= 0 {
		return 1
	}
	return d.Damping / (2 * math.Sqrt(d.Stiffness*d.Mass))
}

// SheetSpring is the slightly under-damped spring used to open a bottom
// sheet and to snap it back after a cancelled drag (ζ = 0.75, ω = 15 rad/s).
func SheetSpring() SpringDescription {
	return SpringDescription{Mass: 0.8, Stiffness: 180, Damping: 18}
}

// AlertSpring is the scale spring of an alert dialog (tension 100, friction 8).
func AlertSpring() SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: 100, Damping: 8}
}

// CriticalSpring returns a critically damped spring with the given stiffness.
// It settles as fast as possible without overshooting.
func CriticalSpring(stiffness float64) SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: stiffness, Damping: 2 * math.Sqrt(stiffness)}
}

// Default rest thresholds, in units and units per second.
const (
	DefaultRestDisplacement = 0.5
	DefaultRestSpeed        = 0.5
)

// SpringSimulation integrates a spring toward a target position.
//
// Integration is delegated to harmonica, which solves the oscillator
// analytically, so arbitrary frame intervals produce stable results.
type SpringSimulation struct {
	desc     SpringDescription
	position float64
	velocity float64
	target   float64

	// RestDisplacement and RestSpeed decide when the spring is settled.
	RestDisplacement float64
	RestSpeed        float64
	// OvershootClamping ends the simulation at the target as soon as the
	// position crosses it.
	OvershootClamping bool

	done bool
}

// NewSpringSimulation creates a spring starting at position with velocity,
// moving toward target.
func NewSpringSimulation(desc SpringDescription, position, velocity, target float64) *SpringSimulation {
	return &SpringSimulation{
		desc:             desc,
		position:         position,
		velocity:         velocity,
		target:           target,
		RestDisplacement: DefaultRestDisplacement,
		RestSpeed:        DefaultRestSpeed,
	}
}

// Step advances the simulation by dt seconds and reports whether it has settled.
func (s *SpringSimulation) Step(dt float64) bool {
	if s.done {
		return true
	}
	if dt <= 0 || math.IsNaN(dt) {
		return false
	}
	freq := s.desc.AngularFrequency()
	if freq == 0 {
		s.settle()
		return true
	}

	before := s.position - s.target
	spring := harmonica.NewSpring(dt, freq, s.desc.DampingRatio())
	s.position, s.velocity = spring.Update(s.position, s.velocity, s.target)
	after := s.position - s.target

	if s.OvershootClamping && before != 0 && math.Signbit(before) != math.Signbit(after) {
		s.settle()
		return true
	}
	if math.Abs(after) < s.RestDisplacement && math.Abs(s.velocity) < s.RestSpeed {
		s.settle()
		return true
	}
	return false
}

func (s *SpringSimulation) settle() {
	s.position = s.target
	s.velocity = 0
	s.done = true
}

// Position returns the current position.
func (s *SpringSimulation) Position() float64 { return s.position }

// Velocity returns the current velocity in units per second.
func (s *SpringSimulation) Velocity() float64 { return s.velocity }

// Target returns the equilibrium position.
func (s *SpringSimulation) Target() float64 { return s.target }

// IsDone reports whether the spring has settled.
func (s *SpringSimulation) IsDone() bool { return s.done }

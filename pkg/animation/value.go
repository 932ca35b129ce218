package animation

import (
	"math"
	"time"
)

// Transition describes how a Value travels to a new target.
type Transition interface {
	newMotion(from, velocity, to float64) motion
}

// motion advances one in-flight transition.
type motion interface {
	advance(dt time.Duration) (position, velocity float64, done bool)
}

// Timing animates over a fixed duration, shaped by Curve (Linear when nil).
type Timing struct {
	Duration time.Duration
	Curve    Curve
}

func (t Timing) newMotion(from, _, to float64) motion {
	curve := t.Curve
	if curve == nil {
		curve = Linear
	}
	return &timingMotion{from: from, to: to, duration: t.Duration, curve: curve, last: from}
}

type timingMotion struct {
	from, to float64
	duration time.Duration
	curve    Curve
	elapsed  time.Duration
	last     float64
}

func (m *timingMotion) advance(dt time.Duration) (float64, float64, bool) {
	if m.duration <= 0 {
		return m.to, 0, true
	}
	m.elapsed += dt
	progress := float64(m.elapsed) / float64(m.duration)
	if progress >= 1 {
		return m.to, 0, true
	}
	pos := m.from + (m.to-m.from)*m.curve(progress)
	var vel float64
	if dt > 0 {
		vel = (pos - m.last) / dt.Seconds()
	}
	m.last = pos
	return pos, vel, false
}

// Spring animates with a SpringSimulation seeded with the value's current
// velocity, so interrupting an animation does not produce a jump.
type Spring struct {
	Description       SpringDescription
	OvershootClamping bool
	// RestDisplacement and RestSpeed default to the package defaults when zero.
	RestDisplacement float64
	RestSpeed        float64
}

func (s Spring) newMotion(from, velocity, to float64) motion {
	sim := NewSpringSimulation(s.Description, from, velocity, to)
	sim.OvershootClamping = s.OvershootClamping
	if s.RestDisplacement > 0 {
		sim.RestDisplacement = s.RestDisplacement
	}
	if s.RestSpeed > 0 {
		sim.RestSpeed = s.RestSpeed
	}
	return springMotion{sim}
}

type springMotion struct {
	sim *SpringSimulation
}

func (m springMotion) advance(dt time.Duration) (float64, float64, bool) {
	done := m.sim.Step(dt.Seconds())
	return m.sim.Position(), m.sim.Velocity(), done
}

// Value is a continuously animated number, read by a renderer every frame.
//
// Transitions are scheduled with AnimateTo and advanced by a Ticker from
// the Value's TickerProvider, or manually with Tick when no provider is set.
// Starting a transition supersedes the one in flight; the superseded
// completion callback receives finished=false.
//
// A Value is not safe for concurrent use.
type Value struct {
	provider TickerProvider

	current  float64
	velocity float64
	target   float64

	bounded  bool
	min, max float64

	motion      motion
	onComplete  func(finished bool)
	ticker      *Ticker
	lastElapsed time.Duration

	listeners      map[int]func(float64)
	nextListenerID int
}

// NewValue creates a value at initial. provider may be nil, in which case
// the owner must call Tick itself.
func NewValue(provider TickerProvider, initial float64) *Value {
	return &Value{
		provider:  provider,
		current:   initial,
		target:    initial,
		listeners: make(map[int]func(float64)),
	}
}

// SetBounds clamps every position the value takes to [min, max].
func (v *Value) SetBounds(min, max float64) {
	v.bounded = true
	v.min, v.max = min, max
	v.current = v.clamp(v.current)
	v.target = v.clamp(v.target)
}

// Get returns the current value.
func (v *Value) Get() float64 { return v.current }

// Velocity returns the current velocity in units per second.
func (v *Value) Velocity() float64 { return v.velocity }

// Target returns the destination of the running transition, or the
// current value when idle.
func (v *Value) Target() float64 { return v.target }

// IsAnimating reports whether a transition is in flight.
func (v *Value) IsAnimating() bool { return v.motion != nil }

// Set jumps to x, cancelling any running transition.
func (v *Value) Set(x float64) {
	v.cancel()
	if math.IsNaN(x) {
		return
	}
	v.current = v.clamp(x)
	v.target = v.current
	v.velocity = 0
	v.notify()
}

// AnimateTo starts a transition from the current value toward target.
// onComplete may be nil; it runs exactly once, with finished=true when the
// value reached target or false when the transition was superseded or stopped.
func (v *Value) AnimateTo(target float64, t Transition, onComplete func(finished bool)) {
	v.cancel()
	if math.IsNaN(target) {
		target = v.current
	}
	v.target = v.clamp(target)
	v.motion = t.newMotion(v.current, v.velocity, v.target)
	v.onComplete = onComplete
	if v.provider != nil {
		v.lastElapsed = 0
		v.ticker = v.provider.CreateTicker(v.onTick)
		v.ticker.Start()
	}
}

func (v *Value) onTick(elapsed time.Duration) {
	dt := elapsed - v.lastElapsed
	v.lastElapsed = elapsed
	v.Tick(dt)
}

// Tick advances the running transition by dt and reports whether the value
// is at rest afterwards.
func (v *Value) Tick(dt time.Duration) bool {
	if v.motion == nil {
		return true
	}
	if dt < 0 {
		dt = 0
	}
	pos, vel, done := v.motion.advance(dt)
	v.current = v.clamp(pos)
	v.velocity = vel
	if done {
		v.current = v.target
		v.velocity = 0
	}
	v.notify()
	if done {
		cb := v.onComplete
		v.motion = nil
		v.onComplete = nil
		v.stopTicker()
		if cb != nil {
			cb(true)
		}
	}
	return done
}

// Stop halts the running transition at the current value.
func (v *Value) Stop() {
	v.cancel()
}

func (v *Value) cancel() {
	if v.motion == nil {
		return
	}
	cb := v.onComplete
	v.motion = nil
	v.onComplete = nil
	v.target = v.current
	v.stopTicker()
	if cb != nil {
		cb(false)
	}
}

func (v *Value) stopTicker() {
	if v.ticker != nil {
		v.ticker.Stop()
		v.ticker = nil
	}
}

func (v *Value) clamp(x float64) float64 {
	if !v.bounded {
		return x
	}
	return clamp(x, v.min, v.max)
}

// AddListener registers fn to receive every new value.
// Returns an unsubscribe function.
func (v *Value) AddListener(fn func(float64)) func() {
	id := v.nextListenerID
	v.nextListenerID++
	v.listeners[id] = fn
	return func() {
		delete(v.listeners, id)
	}
}

func (v *Value) notify() {
	for _, fn := range v.listeners {
		fn(v.current)
	}
}

// Dispose stops the value without running its completion callback.
func (v *Value) Dispose() {
	v.onComplete = nil
	v.motion = nil
	v.stopTicker()
	v.listeners = make(map[int]func(float64))
}

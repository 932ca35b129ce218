// Package animation provides frame-driven animated values.
//
// A [Scheduler] is the frame pump: a host calls Step once per display frame
// and every active [Ticker] receives the time elapsed since it started.
// A [Value] is a number read by renderers each frame; AnimateTo moves it
// toward a target with a [Timing] curve or a [Spring], and a newer
// transition always starts from wherever the value currently is.
//
// Time comes from a [Clock], which tests replace with a fake:
//
//	clk := kartotest.NewFakeClock()
//	sched := animation.NewScheduler(clk)
//	v := animation.NewValue(sched, 0)
//	v.AnimateTo(1, animation.Timing{Duration: 200 * time.Millisecond}, nil)
//	clk.Advance(100 * time.Millisecond)
//	sched.Step() // v.Get() == 0.5
package animation

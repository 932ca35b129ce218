// Package testing provides deterministic time and gesture helpers for
// testing animated components.
//
// # Animation Testing
//
// A [FramePump] owns a [FakeClock] and an animation.Scheduler. Give the
// scheduler to the component under test and advance time explicitly:
//
//	pump := kartotest.NewFramePump()
//	s := sheet.New(pump.Scheduler(), metrics)
//	s.SetVisible(true)
//	pump.PumpFor(300 * time.Millisecond)
//	if err := pump.Settle(200); err != nil {
//	    t.Fatal(err)
//	}
//
// # Gestures
//
// [DragEvents] and [TapEvents] synthesize pointer sequences with timestamps
// taken from the fake clock, so release velocities are reproducible.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import kartotest "github.com/karto-app/karto/pkg/testing"
package testing

// Package gestures turns raw pointer events into drag and tap callbacks.
//
// Recognizers are plain structs fed one [PointerEvent] at a time through
// HandleEvent. They never touch animation state themselves; they emit
// start/update/end details that the owner interprets. This keeps the
// threshold math of consumers testable without a platform gesture system.
package gestures

// Package sheet implements an animated bottom sheet.
//
// A [Sheet] composes four parts:
//
//   - [ResolveHeight] picks the panel height once per opening from the
//     viewport, the requested height, an optional cover percentage and the
//     full-screen flag.
//   - A [Driver] owns the panel offset and backdrop opacity and runs the
//     open spring, the timed programmatic close and the drag release.
//   - A [DragInterpreter] maps drag messages from the handle onto those
//     values and decides, on release, between dismissing and snapping back.
//   - The Sheet itself tracks mounting, routes pointer input and reports
//     each completed close once through its OnClose callback.
//
// Nothing here blocks. Hosts call Step on the scheduler passed to [New]
// once per display frame and draw [Sheet.Frame] afterwards.
package sheet

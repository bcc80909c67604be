// Package progress renders an animated circular progress indicator.
//
// An Engine owns the drawing: it paints a background ring on a canvas
// surface, then sweeps a colored arc clockwise from twelve o'clock toward
// the target value, one FrameMsg at a time, with a percentage label in
// the middle. Each call to Animate starts a new run; frames carrying an
// older run number are dropped, which is how a restart or Destroy cancels
// an animation in flight.
//
// Model wraps an Engine as a Bubble Tea component that starts animating
// the first time it is reported visible.
package progress

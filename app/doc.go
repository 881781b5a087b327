// Package app runs the engine: it opens the configured windows, gives each
// one its own backend adapter, and drives the game state machine and the
// per-window frame sequence from a single cooperative loop.
//
// One tick of the loop polls events, measures the clamped frame time,
// advances the simulation (fixed or variable step), builds the transform
// once and renders every open window with
//
//	BeginFrame, Clear, State.Render, SetTransform, Draw, EndFrame, Present
//
// A window whose adapter fails to submit or present is closed; the other
// windows keep running. The loop ends when the last window closes, the
// context is cancelled or Options.MaxFrames ticks have run.
package app

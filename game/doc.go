// Package game holds the game state machine, the three engine states and
// the transform the Gameplay state drives from input.
//
// States never touch the GPU directly. The application builds the
// transform matrix from Transform once per frame and hands it to every
// window's adapter.
package game

// Package model holds the declaration and emission data model shared by the
// analyzer, the planners and the emitter.
//
// Values are built once per generation run and never mutated afterwards.
package model

// Package sim provides an in-process double of the doorbell peripheral,
// exposing both core-side views for tests and demos.
package sim

// Flags are level-sensitive, as on hardware: enabling an interrupt whose
// condition already holds dispatches it immediately. Each core gets one
// dispatch goroutine, modelling one interrupt context per core.

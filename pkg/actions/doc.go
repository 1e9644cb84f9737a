// Package actions provides the side effects bound to the data-entry pages:
// Booking charges a payment gateway (simulated by default, with a fixed
// artificial latency on an injectable clock) and Creation records a new
// event. Both satisfy pipeline.Action.
package actions

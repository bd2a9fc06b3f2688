// Package siri builds SIRI-profile deliveries from replay snapshots.
//
// Only VehicleMonitoring (VM) is produced: each replayed vehicle becomes one
// VehicleActivity entry carrying its interpolated location, bearing and
// lifecycle status. Passengers never appear in SIRI output. The envelope
// keeps the SituationExchange slot for profile compatibility; replay has no
// situations, so it is always empty.
package siri

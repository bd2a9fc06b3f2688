// Package utils provides internal utility functions for the fleet replay engine.
// This package is not intended to be imported by external code.
//
// It contains:
//   - Time formatting and conversion utilities
//   - Distance and interpolation helpers for path geometry
package utils

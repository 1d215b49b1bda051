// Package utils provides common utility functions for the library-compare application.
// It includes helpers for converting the loosely typed values found in decoded
// platform payloads (numbers that arrive as float64, ids that may be strings or
// numbers, optional arrays) into concrete Go types.
package utils

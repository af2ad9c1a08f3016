// Package geo provides the small set of scalar and coordinate types shared
// by every other package in this module: Distance, Time, Speed, and
// Coordinates. No raw float64 crosses a package boundary uncoupled from one
// of these wrappers — every conversion between units goes through them.
//
// Distance, Time, and Speed each hold a single scalar in their canonical
// unit (meters, seconds, meters-per-second respectively). Construction uses
// named constructors (FromMeters, FromKilometers, ...) rather than
// keyword-style sums, since Go has no keyword arguments; a constructor
// simply returns the wrapper holding its one converted scalar.
package geo

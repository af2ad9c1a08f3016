// Package h3cell is the sole boundary between this module and the H3
// hierarchical hexagonal grid. It exposes exactly the three operations the
// rest of the module needs — point→cell, cell→centre, and k-ring neighbor
// enumeration — behind a narrow interface so any H3 binding compatible with
// the standard 64-bit cell-id encoding can stand in for
// github.com/uber/h3-go/v4 without touching a caller.
package h3cell

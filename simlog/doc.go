// Package simlog provides the structured logging used at the CLI
// boundary and for diagnostic counters produced while building the
// atlas and assigning routes.
package simlog

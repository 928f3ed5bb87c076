// Package query is the filtering and recommendation engine for menu items.
//
// Every function here is pure: it reads the caller's slice, never mutates
// it, performs no I/O and keeps no state, so it may be called concurrently
// against independent snapshots. Callers are expected to hand in validated
// criteria; the boundary layer owns parsing and rejection.
package query

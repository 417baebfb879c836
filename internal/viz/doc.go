// Package viz renders Poincaré sections in the terminal.
//
// Sections are drawn on a braille-dot canvas using the plot projection
// fixed by the field-line problem's geometry, so a toroidal run comes
// out in (R, Z) and a slab run in (θ, R) without the caller choosing.
// A bubbletea live view accumulates crossings while a trace runs.
package viz

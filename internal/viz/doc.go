// Package viz renders meniscus profiles in the terminal.
//
// [Chart] and [Summary] produce static text for the CLI. [Explorer] is a
// Bubble Tea model that re-solves the meniscus each time a parameter
// changes.
//
// # Key Bindings
//
//	j/k, up/down  - Select parameter
//	h/l, -/+      - Decrease/increase the selected parameter
//	i             - Switch integrator
//	t             - Cycle color themes
//	r             - Reset to the starting parameters
//	q             - Quit
package viz

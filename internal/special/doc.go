// Package special evaluates the modified Bessel functions used to seed and
// check the meniscus solver.
//
// Both functions use the closed-form polynomial approximations of
// Abramowitz and Stegun (9.8.1 to 9.8.4): an even polynomial below
// |x| = 3.75 and an asymptotic polynomial in 3.75/|x| above it.
// Relative accuracy is better than 1e-6 over the range used here.
package special

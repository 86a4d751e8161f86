// Package particle implements the particle field drawn behind the page: a fixed
// set of particles that drift across the viewport, bounce off its edges, move
// away from the pointer, and are joined by faint lines when close together.
//
// The field advances one unit step per frame rather than integrating over
// elapsed time, so its apparent speed follows the display refresh rate.
// Boundary reflection only turns the velocity around; it never clamps the
// position, so a particle may overshoot an edge by up to one step before it
// visibly reverses.
//
// Connect compares every pair of particles each frame. That is quadratic in
// the particle count and is the field's scaling limit; it is fine for the
// default of 80 particles.
package particle

// Package assignment models a delivery assignment: one shipped quantity of
// product bound to one driver and one destination, moved through
// pending -> in-transit -> delivered|cancelled by that driver only.
//
// The package also defines ArchivedAssignment, the immutable copy kept once
// an assignment leaves the working set.
package assignment

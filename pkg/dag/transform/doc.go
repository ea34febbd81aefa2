// Package transform provides graph transformations that prepare a closure
// diagram for layered drawing.
//
// # Overview
//
// A closure lists every node reachable from a focus node, including nodes
// reached only through transitivity. Drawn as-is, the diagram is cluttered
// with edges that longer paths already imply. This package turns it into a
// readable layered form:
//
//   - [BreakCycles] orders each cycle as a chain so arrows point one way
//   - [TransitiveReduction] drops edges implied by same-label paths
//   - [AssignLayers] places each node below everything that points at it
//
// [Prepare] applies all three in order.
package transform

// Package graph defines the design graph: an immutable DAG of primitive
// constructions, placements and groups produced by evaluating a design
// script. Nodes carry geometric intent only; turning them into control
// points and knots is the resolver's job.
package graph

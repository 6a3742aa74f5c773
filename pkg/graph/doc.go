// Package graph defines the scene graph produced by scene scripts.
// The scene graph is an immutable DAG of named solids, the shapes they are
// built from, placements, and groups. It is walked by the tessellate package
// to produce the solids handed to the exporter.
package graph

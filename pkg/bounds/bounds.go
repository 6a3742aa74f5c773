// Package bounds tracks the axis-aligned extent of a scene as solids are
// added to it.
package bounds

import (
	"errors"
	"math"

	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrEmpty is returned by Get before anything has been added.
var ErrEmpty = errors.New("bounds: no solid has been added")

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max mgl64.Vec3
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], o.Min[i])
		b.Max[i] = math.Max(b.Max[i], o.Max[i])
	}
	return b
}

// Grow returns b padded by margin on every side of every axis.
func (b Box) Grow(margin float64) Box {
	m := mgl64.Vec3{margin, margin, margin}
	return Box{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Size returns the edge lengths of b.
func (b Box) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of b.
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Accumulator widens a running box over every solid it is given. It never
// shrinks and has no removal operation.
type Accumulator struct {
	box   Box
	count int
}

// Add widens the box to the solid's native bounding box. Solids with no
// geometric extent are ignored and not counted.
func (a *Accumulator) Add(s kernel.Solid) {
	if kernel.IsEmpty(s) {
		return
	}
	min, max := s.BoundingBox()
	a.AddBox(Box{Min: min, Max: max})
}

// AddBox widens the box to include b.
func (a *Accumulator) AddBox(b Box) {
	if a.count == 0 {
		a.box = b
	} else {
		a.box = a.box.Union(b)
	}
	a.count++
}

// Get returns the accumulated box, or ErrEmpty if nothing was added.
func (a *Accumulator) Get() (Box, error) {
	if a.count == 0 {
		return Box{}, ErrEmpty
	}
	return a.box, nil
}

// Count returns how many boxes have been added.
func (a *Accumulator) Count() int {
	return a.count
}

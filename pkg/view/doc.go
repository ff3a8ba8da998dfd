// Package view holds the pan/zoom state of the interactive graph view.
//
// A [Transform] maps world coordinates (where the simulation places nodes)
// to screen coordinates (where the surface draws them):
//
//	screen = world*K + (X, Y)
//	world  = (screen - (X, Y)) / K
//
// [SafeScale] converts the zoom factor into a visual size multiplier so
// nodes and labels grow with zoom, but sub-linearly and within bounds.
//
// Nothing in this package returns an error: invalid input leaves the
// transform unchanged and out-of-range scales are clamped.
package view

// Package pkg holds the libraries behind spiderweb, an interactive
// force-directed viewer for note graphs.
//
// # Overview
//
// A graph of notes, tags and unresolved links is fetched from a graph
// server, laid out by a force simulation and drawn every frame. Pointer
// input hovers, drags, zooms and opens nodes.
//
//  1. [graph] - wire types, the live data set, the edge-list builder
//  2. [view], [hit], [hover], [interact] - transform, hit testing, focus
//     fade and gestures
//  3. [sim] - the force layout
//  4. [render] - the frame renderer, with [render/term] (braille canvas),
//     [render/raster] (PNG) and [render/nodelink] (DOT/SVG) surfaces
//  5. [loop] - frame scheduling and input subscriptions
//  6. [client], [server], [store], [cache] - fetching, serving, persisting
//     and caching graphs
//
// # Frame Flow
//
//	graph server ──GET /v1/graph──▶ client ──▶ graph.Resolve
//	                                               ↓
//	  loop tick ──▶ sim.Step ──▶ hover.Advance ──▶ render.DrawFrame ──▶ surface
//	                                               ↑
//	  pointer ──▶ interact.Controller ──(transform, hover, pins)
//
// # Quick Start
//
// Settle a layout and render one frame to PNG:
//
//	data := graph.Resolve(graph.Normalize(g))
//	sim.New(data, sim.DefaultConfig()).Run(300)
//
//	surface, _ := raster.New(1200, 800)
//	t := view.Center(view.Point{X: 600, Y: 400}, 1)
//	render.New().DrawFrame(surface, data, t, hover.Snapshot{}, render.Dark())
//	surface.SavePNG("graph.png")
package pkg

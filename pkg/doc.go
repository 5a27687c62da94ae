// Package pkg provides the core libraries for the ascii diagram compiler.
//
// # Overview
//
// ascii turns a small, line-oriented diagram language into fixed-width
// box-drawing ASCII art. The pkg directory is organized along the
// pipeline:
//
//  1. [parser] - source text to diagram model
//  2. [diagram] - the model: a tagged union over diagram kinds
//  3. [layout] - model to absolute geometry, one algorithm per kind
//  4. [grid] - the character grid, glyph table and sanitizer
//  5. [render] - geometry to grid to serialized output
//  6. [pipeline] - the public render/validate entry points
//  7. [cache] - content-addressed storage for rendered output
//
// # Architecture
//
// The data flow for one call:
//
//	source text
//	     ↓ parser
//	diagram model
//	     ↓ layout
//	geometry
//	     ↓ render
//	output text
//
// Every stage is pure: no stage holds state between calls, and identical
// input yields byte-identical output.
package pkg

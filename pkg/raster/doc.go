// Package raster provides the sample buffer and numeric model for
// rendered test patterns.
//
// # Sample Space
//
// Colors are authored in the document's depth: integer code values in
// [0, 2^depth-1] for the 8/10/12/16-bit depths, nominal [0, 1] floats
// for the 32-bit float depth. Samples are stored as float32, which
// represents every integer code value up to 16 bits exactly, so one
// buffer type serves all depths and quantization happens once at
// authoring or interpolation time, never per copy.
//
// # Interpolation
//
// Lerp interpolates in the authored representation and rounds half-up
// per component for integer depths. Interpolating already-quantized
// integers would compound rounding error across long ramps, so fills
// always lerp from the original endpoint colors.
package raster

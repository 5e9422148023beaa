// Package sink encodes rendered sample buffers into image files.
//
// A sink maps the stored code values of a [raster.Buffer] to the sample
// format of an output container:
//
//   - TIFF: full-fidelity delivery. 8-bit documents encode as 8-bit
//     samples; 10, 12 and 16-bit documents as 16-bit samples with the
//     code value shifted into the most significant bits; the float
//     depth as 16-bit full-scale.
//   - PNG: an 8-bit preview, scaled down from the document depth.
//
// # Full-scale 16-bit TIFF
//
// Shifting a 10-bit code into the top of a 16-bit sample leaves the low
// bits zero, so white lands at 0xFFC0 instead of 0xFFFF and viewers
// show a slightly dim image. [WithFullScale] replicates the most
// significant bits into the vacated low bits:
//
//	out = v << (16-bits)  |  v >> (2*bits - 16)
//
// which maps 0 to 0x0000 and the depth's maximum exactly to 0xFFFF.
// Full-scale output is on by default, matching delivery practice;
// disable it when downstream tooling expects pure left-justified codes.
//
// [raster.Buffer]: github.com/yergin/test-pattern-descriptor/pkg/raster.Buffer
package sink

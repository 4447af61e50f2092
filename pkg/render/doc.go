// Package render holds output conversion shared by the card renderers.
//
// [ToPDF] and [ToPNG] convert SVG documents with the external rsvg-convert
// tool (from librsvg):
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// The tarjeta generator uses [ToPNG] for the template preview when
// [Available] reports the tool on PATH.
//
// The card renderers live in the [tarjeta] subpackage:
//   - [tarjeta/layout]: grid arithmetic and card geometry
//   - [tarjeta/sink]: PNG, SVG and template output
package render

// Package sink renders tarjetas to output formats.
//
// Single cards:
//
//   - [RenderPNG]: raster card drawn with gg, photo resized with imaging
//   - [RenderSVG]: vector card with the same geometry, photo embedded as a
//     data URI so the file is self-contained when imported elsewhere
//
// The print template:
//
//   - [RenderTemplateSVG]: the 4x15 grid page, each cell linking to its card
//   - [RenderTemplateJSON]: the computed placements, for external tools
//
// Both card renderers take the photo bytes already fetched; a nil photo
// leaves the photo area blank.
package sink

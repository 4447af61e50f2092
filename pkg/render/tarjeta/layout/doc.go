// Package layout computes tarjeta geometry.
//
// Two coordinate systems are used:
//
//   - Card space: one 600x460 px card, origin top-left, y down. Used by the
//     raster and vector card renderers.
//   - Page space: the 550x329 mm print template, origin bottom-left, y up.
//     Used by the template renderer and the automation target. [Page.ToSVG]
//     flips a page point into SVG user space.
//
// Template cells are filled column by column: rows 0..14 of column 0 first,
// then column 1, up to four columns. Anything past the 60th candidate is not
// placed.
package layout

// Package tarjeta generates candidate identification cards.
//
// For every record the [Generator] writes a raster and a vector card
//
//	{out}/{name}_{municipalityCode}.png
//	{out}/{name}_{municipalityCode}.svg
//
// and then the aggregate print template tarjetas_master.svg, whose cells link
// to the card SVGs, together with tarjetas_layout.json describing the cell
// placements. A photo that cannot be fetched or decoded is logged and the
// card is produced without it.
package tarjeta

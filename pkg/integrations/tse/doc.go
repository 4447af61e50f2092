// Package tse is a client for the public elections-results REST API.
//
// Lookups run in a fixed order, each keyed by the previous one's result:
//
//	id, _ := c.ElectionID(ctx, 2024, tse.ScopeMunicipal)
//	regions, _ := c.Regions(ctx, id)
//	if !regions.Contains("SUL", "SC") { ... }
//	code, _ := c.MunicipalityCode(ctx, "SC", id, "Sombrio")
//	records, _ := c.AllElected(ctx, 2024, id, code)
//
// Not-found outcomes are returned as coded errors from
// [github.com/matzehuels/eleitos/pkg/errors] so the caller can end the run
// gracefully. Malformed payloads are treated as not found.
package tse

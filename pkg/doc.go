// Package pkg provides the libraries behind the eleitos command.
//
// # Overview
//
// Eleitos collects the elected candidates of a Brazilian municipality and
// turns them into data files, photos and printable tarjetas. The pkg
// directory is organized by stage:
//
//  1. [integrations] - upstream API clients (elections data, image jobs)
//  2. [io] - CSV/JSON export, directory layout, optional Mongo sink
//  3. [pipeline] - photo download and image-stage chaining
//  4. [render] - tarjeta cards, the print template and SVG conversion
//  5. [automation] - the desktop-publishing document driver
//
// Supporting packages: [candidate] (the shared record), [cache],
// [errors], [observability], [buildinfo] and [fonts].
//
// # Data Flow
//
//	Elections API
//	     ↓
//	[integrations/tse] (election id, regions, municipality, elected candidates)
//	     ↓
//	[io] (DADOS/{REGION}/{UF}/{MUNICIPALITY}/*.csv, *.json)
//	     ↓
//	[pipeline] (imagens/, imagens_processadas/ via [integrations/picwish])
//	     ↓
//	[render/tarjeta] + [automation] (cards, master template, print document)
//
// # Quick Start
//
//	client := tse.NewClient(cache.NewNullCache(), time.Hour)
//	id, _ := client.ElectionID(ctx, 2024, tse.ScopeMunicipal)
//	code, _ := client.MunicipalityCode(ctx, "SC", id, "Sombrio")
//	records, _ := client.AllElected(ctx, 2024, id, code)
//
//	paths, _ := io.ExportAll("DADOS", "SUL", "SC", "Sombrio", records)
//	runner := pipeline.NewRunner(nil, client, paths.Dir, logger)
//	results, _ := runner.DownloadAll(ctx, records)
package pkg

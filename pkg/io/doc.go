// Package io exports and reloads elected-candidate records.
//
// # Layout
//
// Exports live under a deterministic tree rooted at the configured output
// directory (DADOS by default):
//
//	DADOS/{REGION}/{UF}/{MUNICIPALITY}/candidatos_eleitos_{UF}_{MUNICIPALITY}.csv
//	DADOS/{REGION}/{UF}/{MUNICIPALITY}/candidatos_eleitos_{UF}_{MUNICIPALITY}.json
//
// Path segments are trimmed and upper-cased; spaces in the file base name
// become underscores. [DataDir] creates the directory if it is missing.
//
// # Formats
//
// Both files carry the same columns, in this order:
//
//	Nome Completo, Nome de Urna, Número na Urna, Partido, Cargo,
//	Código do Cargo, Código do Município, Reeleição, Imagem Oficial
//
// The JSON file is an indented array of objects using those keys, with
// Reeleição written as "Sim" or "Não". It can be re-imported with
// [ImportJSON]; a write-then-read round trip reproduces the records exactly.
//
// # MongoDB
//
// [MongoSink] upserts the same records into a collection, keyed by ballot
// name and municipality code, for deployments that keep a central archive.
package io

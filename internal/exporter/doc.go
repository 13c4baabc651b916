// Package exporter writes the analysis artifacts consumed by the
// dashboard renderer.
//
// CSVWriter is the core CSV writer with UTF-8 BOM output for Excel
// compatibility and a streaming variant for large fact tables.
// ArtifactExporter maps the typed pipeline outputs (fact table, calendar
// table, dimension tables, measures bundle) onto flat files under the
// reports directory.
package exporter

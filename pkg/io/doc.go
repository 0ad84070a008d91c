// Package io provides JSON import and export for content collections.
//
// # Overview
//
// This package enables serialization of collections to and from a simple
// JSON format. The format is designed for:
//
//   - Integration with external tools that produce or consume dashboard specs
//   - Archiving a collected dashboard for later rebuilds
//   - Round-trip preservation: import, build, export, and re-import identically
//
// # JSON Format
//
// The format has one required top-level array and a handful of settings:
//
//	{
//	  "shared_first_level": true,
//	  "default_dataset": "survey",
//	  "labels": {"demographics": "Demographics"},
//	  "items": [
//	    {"kind": "metric", "path": ["overview"], "params": {"agg": "count"}},
//	    {"kind": "bar", "path": ["demographics"], "params": {"x_var": "age_group"}}
//	  ]
//	}
//
// # Item Fields
//
// Required:
//   - kind: One of the registered item kinds ("text", "bar", "table", ...)
//
// Optional:
//   - path: Group path as a list of keys (omitted for standalone items)
//   - params: Freeform object with kind-specific parameters
//   - title, tab_title: Display titles
//   - dataset: Name of the dataset the item draws from
//
// # Import
//
// Use [ImportJSON] to read a collection from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	c, err := io.ImportJSON("dashboard.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the JSON structure and item kinds. Errors are
// wrapped with context about which item caused the problem.
//
// # Export
//
// Use [ExportJSON] to write a collection to a file, or [WriteJSON] to write
// to any io.Writer:
//
//	err := io.ExportJSON(c, "dashboard.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The export preserves item order, params, titles, labels, and collection
// settings. Dataset handles (live connections, loaded tables) are not
// serialized; only the reference names on items survive, and callers
// re-attach handles after import.
package io

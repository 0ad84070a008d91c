// Package dataset provides the tabular data layer behind dashboard items.
//
// A [Dataset] is an immutable table of string cells with named columns.
// Datasets are produced by [Source] implementations:
//
//   - [Inline]: literal columns and rows (manifests, tests)
//   - [CSVFile]: local CSV files
//   - [HTTPCSV]: remote CSV documents, fetched with caching and retry
//   - [Mongo]: MongoDB collections, flattened to a rectangular table
//
// Sources are lazy; nothing is read until Load is called. Loaded datasets
// expose a content [Dataset.Fingerprint] so downstream stages can key
// caches on the actual data rather than its origin.
package dataset

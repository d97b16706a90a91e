// Package table provides the tabular data model consumed by the conversion
// engine: an ordered sequence of rows over a fixed, ordered column set, with
// string-valued cells.
//
// Loaders for CSV files and JSON record arrays are included. The engine in
// [github.com/tabviz/tabviz/pkg/relate] never performs I/O itself - callers
// load a table here and hand it over.
package table

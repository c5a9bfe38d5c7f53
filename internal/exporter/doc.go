// Package exporter writes batter reports as CSV files and xlsx
// workbooks. CSV output carries a UTF-8 BOM so Excel opens it
// correctly; workbooks get one sheet per dashboard view.
package exporter

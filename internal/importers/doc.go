// Package importers turns the songbook CSV export into songs, books and
// page mappings.
//
// # Input format
//
// The export is plain comma-delimited text with a header row:
//
//	Seite (Noten),Seite,Buch,Künstler,Titel
//	12,10,1,Reinhard Mey,Über den Wolken
//	,5,W,Traditional,Stille Nacht
//
// Columns are located by header text, so extra or reordered columns are
// fine. "Buch", "Künstler" and "Titel" are required; the two page columns
// are optional. Quoted fields containing commas are not supported.
//
// # Books
//
// Every raw "Buch" value expands to two books: the plain edition
// (book_<x>) and the edition with notation (book_<x>_notes). A song gets a
// page mapping into each edition whose page cell holds a number.
//
// # Example Usage
//
//	result := importers.Import(csvText)
//	if result.Empty() {
//		log.Printf("CSV import produced no songs:\n%s", result.Diagnostics)
//	}
//
// Import never returns an error. Diagnostics is meant for operators and
// must not be parsed.
package importers

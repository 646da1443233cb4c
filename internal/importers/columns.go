package importers

import "strings"

// Column is a role a header cell of the songbook CSV can play.
type Column int

const (
	ColumnPageNotes Column = iota // page in the edition with notation
	ColumnPage                    // page in the plain edition
	ColumnBook
	ColumnArtist
	ColumnTitle

	columnCount
)

// Header texts as they appear in the songbook export.
const (
	HeaderPageNotes = "Seite (Noten)"
	HeaderPage      = "Seite"
	HeaderBook      = "Buch"
	HeaderArtist    = "Künstler"
	HeaderTitle     = "Titel"
)

var columnHeaders = [columnCount]string{
	ColumnPageNotes: HeaderPageNotes,
	ColumnPage:      HeaderPage,
	ColumnBook:      HeaderBook,
	ColumnArtist:    HeaderArtist,
	ColumnTitle:     HeaderTitle,
}

// Header returns the header text that identifies the column.
func (c Column) Header() string {
	if c < 0 || c >= columnCount {
		return ""
	}
	return columnHeaders[c]
}

// Required reports whether an import without this column is rejected.
func (c Column) Required() bool {
	switch c {
	case ColumnBook, ColumnArtist, ColumnTitle:
		return true
	default:
		return false
	}
}

func (c Column) String() string {
	return c.Header()
}

// Matches reports whether a trimmed header cell identifies the column.
// The notation page header tolerates suffixes such as units, every other
// header must match exactly (case-sensitive).
func (c Column) Matches(cell string) bool {
	if c == ColumnPageNotes {
		return strings.Contains(cell, HeaderPageNotes)
	}
	return cell == c.Header()
}

// ColumnIndex maps each column role to its position in the header, -1 when
// the header does not contain it.
type ColumnIndex [columnCount]int

// Of returns the position of the column, -1 if absent.
func (ci ColumnIndex) Of(c Column) int {
	return ci[c]
}

// Missing returns the required columns that were not found.
func (ci ColumnIndex) Missing() []Column {
	var missing []Column
	for c := Column(0); c < columnCount; c++ {
		if c.Required() && ci[c] < 0 {
			missing = append(missing, c)
		}
	}
	return missing
}

// ResolveColumns maps header cells to column roles. The first matching cell
// wins for every role.
func ResolveColumns(header []string) ColumnIndex {
	var ci ColumnIndex
	for c := Column(0); c < columnCount; c++ {
		ci[c] = -1
		for i, cell := range header {
			if c.Matches(cell) {
				ci[c] = i
				break
			}
		}
	}
	return ci
}

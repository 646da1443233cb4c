package utils

import (
	"regexp"
	"strings"
)

// BookColor is the label and cover color of a printed songbook.
type BookColor struct {
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

var bookNumberPattern = regexp.MustCompile(`^book_(\w+?)(_notes)?$`)

// BookColorFor maps a book id (book_<x> or book_<x>_notes) to the color of
// the printed book. Both editions of a book share the color.
// Example: "book_2_notes" -> {"rot", "#FFF44336"}
func BookColorFor(bookID string) BookColor {
	m := bookNumberPattern.FindStringSubmatch(bookID)
	if m == nil {
		return unknownBookColor
	}

	if color, ok := bookColors[strings.ToUpper(m[1])]; ok {
		return color
	}
	return unknownBookColor
}

var unknownBookColor = BookColor{Label: "?", Hex: "#FFD3D3D3"}

var bookColors = map[string]BookColor{
	"1": {Label: "grün", Hex: "#FF4CAF50"},
	"2": {Label: "rot", Hex: "#FFF44336"},
	"3": {Label: "gelb", Hex: "#FFFFEB3B"},
	"4": {Label: "blau", Hex: "#FF2196F3"},
	"5": {Label: "grau", Hex: "#FF9E9E9E"},
	"W": {Label: "W", Hex: "#FF9C27B0"},
}

// Package tier maps solved.ac tier indexes to display labels.
package tier

// Unknown is returned for indexes outside the catalog.
const Unknown = "Unknown"

var names = []string{
	"Unrated",
	"Bronze V", "Bronze IV", "Bronze III", "Bronze II", "Bronze I",
	"Silver V", "Silver IV", "Silver III", "Silver II", "Silver I",
	"Gold V", "Gold IV", "Gold III", "Gold II", "Gold I",
	"Platinum V", "Platinum IV", "Platinum III", "Platinum II", "Platinum I",
	"Diamond V", "Diamond IV", "Diamond III", "Diamond II", "Diamond I",
	"Ruby V", "Ruby IV", "Ruby III", "Ruby II", "Ruby I",
	"Master",
}

// Name returns the label for a tier index, or Unknown when out of range.
func Name(index int) string {
	if index < 0 || index >= len(names) {
		return Unknown
	}
	return names[index]
}

// Count returns the catalog size.
func Count() int {
	return len(names)
}

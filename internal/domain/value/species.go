package value

import "github.com/shopspring/decimal"

// Species is the dominant species of a timber lot. It selects the minimum
// bid increment that applies to the lot.
type Species string

const (
	SpeciesOak      Species = "oak"
	SpeciesBeech    Species = "beech"
	SpeciesSpruce   Species = "spruce"
	SpeciesFir      Species = "fir"
	SpeciesPine     Species = "pine"
	SpeciesAcacia   Species = "acacia"
	SpeciesHornbeam Species = "hornbeam"
	SpeciesMixed    Species = "mixed"
)

func (s Species) String() string {
	return string(s)
}

// minIncrements maps a species to the minimum bid step, RON per m³.
// Valuable hardwood moves in larger steps than bulk softwood.
var minIncrements = map[Species]decimal.Decimal{ //nolint:gochecknoglobals
	SpeciesOak:      decimal.NewFromInt(10),
	SpeciesBeech:    decimal.NewFromInt(5),
	SpeciesSpruce:   decimal.NewFromInt(5),
	SpeciesFir:      decimal.NewFromInt(5),
	SpeciesPine:     decimal.NewFromInt(3),
	SpeciesAcacia:   decimal.NewFromInt(3),
	SpeciesHornbeam: decimal.NewFromInt(3),
	SpeciesMixed:    decimal.NewFromInt(5),
}

// DefaultMinIncrement applies when the species is unknown.
var DefaultMinIncrement = decimal.NewFromInt(5) //nolint:gochecknoglobals

// MinIncrement returns the minimum bid increment for the species, falling
// back to DefaultMinIncrement for unknown categories.
func MinIncrement(s Species) decimal.Decimal {
	if inc, ok := minIncrements[s]; ok {
		return inc
	}
	return DefaultMinIncrement
}

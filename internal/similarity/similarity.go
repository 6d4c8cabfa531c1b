// Package similarity scores how strongly two service requests are related.
//
// Weights range over [MinWeight, BaseWeight]. Lower means more related; a pair
// scoring exactly BaseWeight matched on no dimension and is not related.
package similarity

import (
	"strings"
	"time"
	"unicode"

	"github.com/hupe1980/reqindex/model"
)

const (
	// BaseWeight is the weight of a pair sharing nothing.
	BaseWeight = 10.0
	// MinWeight is the floor applied to every computed weight.
	MinWeight = 1.0

	categoryBonus     = 3.0
	locationBonus     = 3.0
	sameWeekBonus     = 2.0
	sameMonthBonus    = 1.0
	samePriorityBonus = 1.0

	week  = 7 * 24 * time.Hour
	month = 30 * 24 * time.Hour
)

// Relationship labels, in rule order.
const (
	LabelAreaAndCategory = "Same Area & Category"
	LabelCategory        = "Same Category"
	LabelArea            = "Same Area"
	LabelTime            = "Similar Time"
	LabelRelated         = "Related"
)

// Weight computes the relationship weight of a and b.
func Weight(a, b model.Record) float64 {
	w := BaseWeight

	if a.Category == b.Category {
		w -= categoryBonus
	}
	if SharesLocation(a.Location, b.Location) {
		w -= locationBonus
	}

	switch d := timeDistance(a, b); {
	case d < week:
		w -= sameWeekBonus
	case d < month:
		w -= sameMonthBonus
	}

	if a.Priority == b.Priority {
		w -= samePriorityBonus
	}

	return max(MinWeight, w)
}

// Related reports whether a pair with weight w gets an edge.
func Related(w float64) bool {
	return w < BaseWeight
}

// Label names the strongest shared dimension of a and b.
func Label(a, b model.Record) string {
	sameCategory := a.Category == b.Category
	sameArea := SharesLocation(a.Location, b.Location)

	switch {
	case sameCategory && sameArea:
		return LabelAreaAndCategory
	case sameCategory:
		return LabelCategory
	case sameArea:
		return LabelArea
	case timeDistance(a, b) < week:
		return LabelTime
	default:
		return LabelRelated
	}
}

// SharesLocation reports whether two location strings have at least one token
// in common. Matching is case-insensitive; tokens are separated by whitespace
// and punctuation.
func SharesLocation(a, b string) bool {
	ta := Tokens(a)
	if len(ta) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(ta))
	for _, tok := range ta {
		set[tok] = struct{}{}
	}
	for _, tok := range Tokens(b) {
		if _, ok := set[tok]; ok {
			return true
		}
	}
	return false
}

// Tokens splits a location into lowercase tokens. Empty tokens are dropped.
func Tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), isSeparator)
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func timeDistance(a, b model.Record) time.Duration {
	d := a.CreatedAt.Sub(b.CreatedAt)
	if d < 0 {
		d = -d
	}
	return d
}

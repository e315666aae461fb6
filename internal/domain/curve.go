package domain

import "sort"

// Term is a canonical maturity label such as "1m" or "10Y".
type Term string

// TermOrder is the canonical display order of the yield curve, from the
// shortest maturity to the longest.
var TermOrder = []Term{
	"1m", "1.5m", "2m", "3m", "4m", "6m",
	"1Y", "2Y", "3Y", "5Y", "7Y", "10Y", "20Y", "30Y",
}

// termRank maps each canonical term to its position in TermOrder.
var termRank = buildTermRank()

func buildTermRank() map[Term]int {
	m := make(map[Term]int, len(TermOrder))
	for i, t := range TermOrder {
		m[t] = i
	}
	return m
}

// ValidTerm reports whether t is one of the canonical maturity terms.
func ValidTerm(t Term) bool {
	_, ok := termRank[t]
	return ok
}

// TermRank returns the canonical sort position of t. Unknown terms sort
// after every known term.
func TermRank(t Term) int {
	if r, ok := termRank[t]; ok {
		return r
	}
	return len(TermOrder)
}

// CurvePoint is one observed yield for a (date, term) pair. Date keeps
// the source-provided string form, e.g. "2025-09-18T00:00:00".
type CurvePoint struct {
	Date  string  `json:"date"`
	Term  Term    `json:"term"`
	Yield float64 `json:"yield_value"`
}

// SortCurve orders points by canonical term order in place. Unknown
// terms land at the end in their original relative order.
func SortCurve(points []CurvePoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return TermRank(points[i].Term) < TermRank(points[j].Term)
	})
}

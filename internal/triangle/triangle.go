package triangle

import (
	"sort"
)

// Triangle is a sparse mapping from (origin, development) to amount. A
// triangle holds either incremental or cumulative amounts; the transforms
// below convert between the two without mutating the receiver. Cells absent
// from the map are missing, not zero.
type Triangle map[Cell]float64

// NewTriangle builds an incremental triangle from observations. Two
// observations on the same cell are rejected as invalid input.
func NewTriangle(observations []Observation) (Triangle, error) {
	t := make(Triangle, len(observations))
	for _, o := range observations {
		cell := Cell{Origin: o.Origin, Development: o.Development}
		if _, exists := t[cell]; exists {
			return nil, &InvalidInputError{
				Field:   "observations",
				Message: "two observations share one triangle cell",
				Value:   cell,
			}
		}
		t[cell] = o.Amount
	}
	return t, nil
}

// Clone returns a copy of the triangle.
func (t Triangle) Clone() Triangle {
	out := make(Triangle, len(t))
	for cell, amount := range t {
		out[cell] = amount
	}
	return out
}

// MaxOrigin returns the highest origin index present, or 0 when empty.
func (t Triangle) MaxOrigin() int {
	max := 0
	for cell := range t {
		if cell.Origin > max {
			max = cell.Origin
		}
	}
	return max
}

// MaxDevelopment returns the highest development index present, or 0 when
// empty.
func (t Triangle) MaxDevelopment() int {
	max := 0
	for cell := range t {
		if cell.Development > max {
			max = cell.Development
		}
	}
	return max
}

// origins returns the distinct origin indices in ascending order.
func (t Triangle) origins() []int {
	seen := make(map[int]bool)
	for cell := range t {
		seen[cell.Origin] = true
	}
	out := make([]int, 0, len(seen))
	for o := range seen {
		out = append(out, o)
	}
	sort.Ints(out)
	return out
}

// developments returns the sorted development indices present for an origin.
func (t Triangle) developments(origin int) []int {
	var out []int
	for cell := range t {
		if cell.Origin == origin {
			out = append(out, cell.Development)
		}
	}
	sort.Ints(out)
	return out
}

// Cumulative converts an incremental triangle to a cumulative one. For each
// origin the running sum is taken over the cells present, in development
// order, so the output has the same shape as the input.
func (t Triangle) Cumulative() Triangle {
	out := make(Triangle, len(t))
	for _, origin := range t.origins() {
		running := 0.0
		for _, dev := range t.developments(origin) {
			cell := Cell{Origin: origin, Development: dev}
			running += t[cell]
			out[cell] = running
		}
	}
	return out
}

// Incremental converts a cumulative triangle back to incremental amounts,
// treating the cumulative amount before the first present cell of each
// origin as zero. Cumulative followed by Incremental is an exact round trip.
func (t Triangle) Incremental() Triangle {
	out := make(Triangle, len(t))
	for _, origin := range t.origins() {
		prev := 0.0
		for _, dev := range t.developments(origin) {
			cell := Cell{Origin: origin, Development: dev}
			out[cell] = t[cell] - prev
			prev = t[cell]
		}
	}
	return out
}

// Observations flattens the triangle into records sorted by origin then
// development.
func (t Triangle) Observations() []Observation {
	out := make([]Observation, 0, len(t))
	for cell, amount := range t {
		out = append(out, Observation{
			Origin:      cell.Origin,
			Development: cell.Development,
			Amount:      amount,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Origin != out[j].Origin {
			return out[i].Origin < out[j].Origin
		}
		return out[i].Development < out[j].Development
	})
	return out
}

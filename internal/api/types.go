package api

import "encoding/json"

// FilterCategory is one entry of the reference-data endpoint's response.
// The API returns an ordered array of these; categories are identified by
// position only (see the index constants in client.go).
type FilterCategory struct {
	Values []string `json:"values"`
}

// SearchHit is one record descriptor from a search page. The interesting
// columns are keyed by stringified column numbers: "4" holds a
// "label: score" string, "5" a "label: date" string.
type SearchHit struct {
	Name       string            `json:"name"`
	ID         string            `json:"id"` // base64-encoded establishment id
	MapAddress string            `json:"mapAddress"`
	Columns    map[string]string `json:"columns"`
}

// ViolationGroup is one element of the inspection-detail response. The
// violations value is carried through to the output verbatim.
type ViolationGroup struct {
	Violations json.RawMessage `json:"violations"`
}

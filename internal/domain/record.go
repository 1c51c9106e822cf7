package domain

import "encoding/json"

// InspectionRecord is one establishment's inspection result with its
// violation detail attached. Violations is kept as raw JSON and passed
// through to the output untouched.
type InspectionRecord struct {
	Name       string          `json:"name"`
	ID         int             `json:"id"`
	Score      int             `json:"score"`
	Address    string          `json:"address"`
	Date       string          `json:"date"`
	Violations json.RawMessage `json:"violations"`
}
